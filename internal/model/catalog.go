package model

// CatalogCache is the locally cached copy of the remote catalog.
type CatalogCache struct {
	// FetchedOn is the day the catalog was downloaded.
	FetchedOn Date `json:"date"`

	// Problems maps problem id to its metadata.
	Problems map[string]Problem `json:"problems"`
}

// DailySelection holds at most one problem per tier for a date.
type DailySelection struct {
	Date   Date     `json:"date"`
	Easy   *Problem `json:"easy"`
	Medium *Problem `json:"medium"`
	Hard   *Problem `json:"hard"`
}

// Pick returns the problem chosen for a tier, or nil.
func (s DailySelection) Pick(d Difficulty) *Problem {
	switch d {
	case DifficultyEasy:
		return s.Easy
	case DifficultyMedium:
		return s.Medium
	case DifficultyHard:
		return s.Hard
	}
	return nil
}

// SetPick records the choice for a tier.
func (s *DailySelection) SetPick(d Difficulty, p *Problem) {
	switch d {
	case DifficultyEasy:
		s.Easy = p
	case DifficultyMedium:
		s.Medium = p
	case DifficultyHard:
		s.Hard = p
	}
}

// Find looks up a chosen problem by id.
func (s DailySelection) Find(id string) (Problem, bool) {
	for _, d := range Difficulties {
		if p := s.Pick(d); p != nil && p.ID == id {
			return *p, true
		}
	}
	return Problem{}, false
}

// DailyCache maps an ISO date key to the selection drawn for that day.
type DailyCache map[string]DailySelection
