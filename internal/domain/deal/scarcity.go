package deal

// Scarcity describes how many claims a capped deal has left. A nil total means unlimited.
type Scarcity struct {
	Total   *int
	Claimed int
}

// Remaining is -1 for unlimited deals.
func (s Scarcity) Remaining() int {
	if s.Total == nil {
		return -1
	}
	if r := *s.Total - s.Claimed; r > 0 {
		return r
	}
	return 0
}

func (s Scarcity) SoldOut() bool {
	return s.Total != nil && s.Claimed >= *s.Total
}

func (s Scarcity) Limited() bool {
	return s.Total != nil
}
