// Package trip holds the travel-planning domain: requirements, plan
// documents, prompt composition, and normalization of model output.
package trip

import (
	"encoding/json"
	"fmt"
	"time"
)

// Requirements is the structured user input driving plan generation.
// It is immutable once a planning run starts for a submission.
type Requirements struct {
	Destination string   `json:"destination"`
	Budget      int      `json:"budget"`
	Days        int      `json:"days"`
	Interests   []string `json:"interests"`
}

// Validate applies the submission rules enforced by the trip form.
func (r Requirements) Validate() error {
	if r.Destination == "" {
		return fmt.Errorf("destination is required")
	}
	if r.Budget < 1000 {
		return fmt.Errorf("budget must be at least 1000")
	}
	if r.Days < 1 || r.Days > 30 {
		return fmt.Errorf("days must be between 1 and 30")
	}
	if len(r.Interests) == 0 {
		return fmt.Errorf("at least one interest is required")
	}
	return nil
}

// Attraction is either a plain text recommendation or a structured record.
// The model freely returns both shapes, sometimes with Chinese key names;
// normalization reconciles them and the JSON codec round-trips whichever
// shape the entry carries.
type Attraction struct {
	// Text is set when the entry is plain text; the structured fields are
	// empty in that case.
	Text string

	Name        string
	Address     string
	Description string
}

// attractionRecord is the wire shape of a structured attraction.
type attractionRecord struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

// MarshalJSON encodes the attraction as a string or an object, matching the
// shape it was parsed from.
func (a Attraction) MarshalJSON() ([]byte, error) {
	if a.Text != "" {
		return json.Marshal(a.Text)
	}
	return json.Marshal(attractionRecord{
		Name:        a.Name,
		Address:     a.Address,
		Description: a.Description,
	})
}

// UnmarshalJSON accepts both the string and the object shape.
func (a *Attraction) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*a = Attraction{Text: text}
		return nil
	}

	var record attractionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return err
	}
	*a = Attraction{
		Name:        record.Name,
		Address:     record.Address,
		Description: record.Description,
	}
	return nil
}

// PlanDetails is the five-facet structured content of a generated plan.
// After normalization every facet is non-empty.
type PlanDetails struct {
	Weather       string       `json:"weather"`
	Attractions   []Attraction `json:"attractions"`
	Itinerary     []string     `json:"itinerary"`
	Accommodation string       `json:"accommodation"`
	Tips          []string     `json:"tips"`
}

// Plan is a generated trip plan. It is created once per successful
// generation and replaced wholesale by a new submission.
type Plan struct {
	Destination string      `json:"destination"`
	Budget      int         `json:"budget"`
	Days        int         `json:"days"`
	Interests   []string    `json:"interests"`
	CreatedDate time.Time   `json:"createdDate"`
	PlanDetails PlanDetails `json:"planDetails"`
}
