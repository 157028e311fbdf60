package console

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Zhima-Mochi/minishop-cli/internal/application"
)

var (
	// errInputClosed ends the session when the input stream is exhausted.
	errInputClosed = errors.New("console: input closed")
	// errMalformed marks text that does not parse as the number asked for.
	errMalformed = fmt.Errorf("console: malformed number: %w", application.ErrInvalidInput)
	// errInvalidChoice marks an unknown sub-menu answer.
	errInvalidChoice = fmt.Errorf("console: invalid choice: %w", application.ErrInvalidInput)
)

// ask prints prompt and returns the next input line without its line ending.
// Lines of any length are accepted. A final line without a newline is still
// returned; the read after it reports errInputClosed.
func (c *Console) ask(prompt string) (string, error) {
	c.print(prompt)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			c.readErr = err
			return "", errInputClosed
		}
		if line == "" {
			return "", errInputClosed
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) askInt(prompt string) (int, error) {
	line, err := c.ask(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, errMalformed
	}
	return n, nil
}

func (c *Console) askID(prompt string) (int64, error) {
	line, err := c.ask(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		return 0, errMalformed
	}
	return n, nil
}

func (c *Console) askDecimal(prompt string) (decimal.Decimal, error) {
	line, err := c.ask(prompt)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(strings.TrimSpace(line))
	if err != nil {
		return decimal.Zero, errMalformed
	}
	return d, nil
}

// confirm reads a yes/no answer. Anything but yes counts as no.
func (c *Console) confirm(prompt string) (bool, error) {
	line, err := c.ask(prompt)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "s":
		return true, nil
	default:
		return false, nil
	}
}
