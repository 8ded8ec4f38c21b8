package booking

import "time"

// ServiceOption is a bookable salon service with a display price range.
type ServiceOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

// Stylist is a member of the salon team.
type Stylist struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Image     string `json:"image"`
}

// TimeSlot is a fixed appointment slot. Unavailable slots are listed but
// cannot be selected.
type TimeSlot struct {
	ID        string `json:"id"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// DateOption is one selectable appointment date.
type DateOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var serviceOptions = []ServiceOption{
	{ID: "haircut", Name: "Haircut", Price: "$35-55"},
	{ID: "color", Name: "Hair Coloring", Price: "$85+"},
	{ID: "highlights", Name: "Highlights", Price: "$95+"},
	{ID: "treatment", Name: "Hair Treatment", Price: "$35-150"},
	{ID: "styling", Name: "Styling", Price: "$45-75"},
}

var stylists = []Stylist{
	{ID: 1, Name: "Alex Johnson", Specialty: "Coloring Expert", Image: "/stylists/alex.jpg"},
	{ID: 2, Name: "Jamie Smith", Specialty: "Cutting Specialist", Image: "/stylists/jamie.jpg"},
	{ID: 3, Name: "Taylor Wilson", Specialty: "Styling Professional", Image: "/stylists/taylor.jpg"},
	{ID: 4, Name: "Jordan Lee", Specialty: "Treatment Specialist", Image: "/stylists/jordan.jpg"},
}

var timeSlots = []TimeSlot{
	{ID: "9am", Time: "9:00 AM", Available: true},
	{ID: "10am", Time: "10:00 AM", Available: true},
	{ID: "11am", Time: "11:00 AM", Available: false},
	{ID: "1pm", Time: "1:00 PM", Available: true},
	{ID: "2pm", Time: "2:00 PM", Available: true},
	{ID: "3pm", Time: "3:00 PM", Available: true},
	{ID: "4pm", Time: "4:00 PM", Available: false},
	{ID: "5pm", Time: "5:00 PM", Available: true},
}

// ServiceOptions lists the bookable services.
func ServiceOptions() []ServiceOption {
	return append([]ServiceOption(nil), serviceOptions...)
}

// Stylists lists the salon team.
func Stylists() []Stylist {
	return append([]Stylist(nil), stylists...)
}

// TimeSlots lists the fixed appointment slots.
func TimeSlots() []TimeSlot {
	return append([]TimeSlot(nil), timeSlots...)
}

// DateOptions generates the selectable dates: the 14 days after now.
func DateOptions(now time.Time) []DateOption {
	dates := make([]DateOption, 0, 14)
	for i := 1; i <= 14; i++ {
		day := now.AddDate(0, 0, i)
		dates = append(dates, DateOption{
			Value: day.Format("2006-01-02"),
			Label: day.Format("Mon, Jan 2"),
		})
	}
	return dates
}

func findService(id string) (ServiceOption, bool) {
	for _, s := range serviceOptions {
		if s.ID == id {
			return s, true
		}
	}
	return ServiceOption{}, false
}

func findStylist(id int) (Stylist, bool) {
	for _, s := range stylists {
		if s.ID == id {
			return s, true
		}
	}
	return Stylist{}, false
}

func findTimeSlot(id string) (TimeSlot, bool) {
	for _, s := range timeSlots {
		if s.ID == id {
			return s, true
		}
	}
	return TimeSlot{}, false
}

func findDate(value string, now time.Time) (DateOption, bool) {
	for _, d := range DateOptions(now) {
		if d.Value == value {
			return d, true
		}
	}
	return DateOption{}, false
}
