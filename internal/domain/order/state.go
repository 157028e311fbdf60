package order

// OrderState implements the state pattern for order construction:
// empty -> building -> placed. An empty order may be placed directly.
type OrderState interface {
	Status() Status
	OnLineAdded(o *Order) (OrderState, error)
	OnPlaced(o *Order) (OrderState, error)
}

type emptyState struct{}

func (emptyState) Status() Status { return StatusEmpty }

func (emptyState) OnLineAdded(*Order) (OrderState, error) {
	return buildingState{}, nil
}

func (emptyState) OnPlaced(*Order) (OrderState, error) {
	return placedState{}, nil
}

type buildingState struct{}

func (buildingState) Status() Status { return StatusBuilding }

func (buildingState) OnLineAdded(*Order) (OrderState, error) {
	return buildingState{}, nil
}

func (buildingState) OnPlaced(*Order) (OrderState, error) {
	return placedState{}, nil
}

type placedState struct{}

func (placedState) Status() Status { return StatusPlaced }

func (placedState) OnLineAdded(*Order) (OrderState, error) {
	return nil, ErrOrderPlaced
}

func (placedState) OnPlaced(*Order) (OrderState, error) {
	return nil, ErrOrderPlaced
}
