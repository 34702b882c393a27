package models

// Service is a bookable clinical service with a fixed price in integer
// currency units and a session duration.
type Service struct {
	ID              string `json:"id" bson:"_id"`
	Name            string `json:"name" bson:"name"`
	Price           int    `json:"price" bson:"price"`
	DurationMinutes int    `json:"duration_minutes" bson:"duration_minutes"`
}

type Provider struct {
	ID             string   `json:"id" bson:"_id"`
	Name           string   `json:"name" bson:"name"`
	Qualification  string   `json:"qualification" bson:"qualification"`
	ExperienceYrs  int      `json:"experience_years" bson:"experience_years"`
	ServiceIDs     []string `json:"service_ids" bson:"service_ids"`
	ConsultingRoom string   `json:"consulting_room,omitempty" bson:"consulting_room,omitempty"`
}

// OffersService reports whether the provider is qualified for the given
// service. Provider filtering is a pure function of this predicate.
func (p Provider) OffersService(serviceID string) bool {
	for _, id := range p.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

type Slot struct {
	ID            string `json:"id" bson:"_id"`
	ProviderID    string `json:"provider_id" bson:"provider_id"`
	Date          string `json:"date" bson:"date"`
	Time          string `json:"time" bson:"time"`
	IsAvailable   bool   `json:"is_available" bson:"is_available"`
	WaitlistCount int    `json:"waitlist_count" bson:"waitlist_count"`
}
