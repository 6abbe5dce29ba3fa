package session

// EventContextChanged - имя события об изменении активного контекста.
const EventContextChanged = "context.changed"

// Причины изменения контекста.
const (
	ReasonRestaurant = "restaurant"
	ReasonOutlet     = "outlet"
	ReasonHydrate    = "hydrate"
	ReasonClear      = "clear"
)

// ContextChangedEvent публикуется после каждой успешной мутации хранилища.
type ContextChangedEvent struct {
	SessionID string
	Reason    string
	State     State
}

func (e ContextChangedEvent) Name() string {
	return EventContextChanged
}
