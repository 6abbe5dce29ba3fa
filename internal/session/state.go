package session

import (
	"resto-dashboard/internal/dto"
)

// State - структурированный снимок сессии. В хранилище лежит как JSON (слот active_context).
type State struct {
	Me             *dto.MeDTO `json:"me"`
	RestaurantID   *string    `json:"restaurant_id"`
	RestaurantName string     `json:"restaurant_name,omitempty"`
	OutletID       *string    `json:"outlet_id"`
	OutletName     string     `json:"outlet_name,omitempty"`
}

func (s State) Context() dto.ActiveContextDTO {
	c := s.clone()
	return dto.ActiveContextDTO{
		RestaurantID:   c.RestaurantID,
		RestaurantName: c.RestaurantName,
		OutletID:       c.OutletID,
		OutletName:     c.OutletName,
	}
}

// IsEmpty - ничего не выбрано и пользователь не известен.
func (s State) IsEmpty() bool {
	return s.Me == nil && s.RestaurantID == nil && s.OutletID == nil && s.RestaurantName == "" && s.OutletName == ""
}

func (s State) clone() State {
	out := s
	out.RestaurantID = cloneStr(s.RestaurantID)
	out.OutletID = cloneStr(s.OutletID)
	if s.Me != nil {
		me := *s.Me
		me.Roles = append([]string(nil), s.Me.Roles...)
		out.Me = &me
	}
	return out
}

func cloneStr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func strPtr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func sameID(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
