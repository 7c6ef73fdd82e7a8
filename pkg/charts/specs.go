package charts

import (
	"errors"
	"fmt"

	"survey-dashboard-be/pkg/table"
)

type TabID string

const (
	TabOnlineClass TabID = "tab-1"
	TabSelfStudy   TabID = "tab-2"
	TabFitness     TabID = "tab-3"
	TabMedium      TabID = "tab-4"
	TabSleep       TabID = "tab-5"

	DefaultTab = TabOnlineClass
)

// Survey columns the views read.
const (
	ColRating      = "Rating of Online Class experience"
	ColSelfStudy   = "Time spent on self study"
	ColSocialMedia = "Time spent on social media"
	ColFitness     = "Time spent on fitness"
	ColAge         = "Age of Subject"
	ColHealthIssue = "Health issue during lockdown"
	ColOnlineClass = "Time spent on Online Class"
	ColMedium      = "Medium for online class"
	ColSleep       = "Time spent on sleep"
	ColPlatform    = "Prefered social media platform"
)

var ErrUnknownTab = errors.New("unknown tab")

// Spec is one of the five fixed dashboard views.
type Spec struct {
	Tab         TabID
	Title       string
	Required    []string
	Placeholder string
	build       func(t *table.Table) *Figure
}

// Specs lists the views in tab order.
var Specs = []Spec{
	{
		Tab:         TabOnlineClass,
		Title:       "Online Class Experience",
		Required:    []string{ColRating},
		Placeholder: "No data available for Rating of Online Class experience.",
		build:       buildRatingPie,
	},
	{
		Tab:         TabSelfStudy,
		Title:       "Self Study vs Social Media",
		Required:    []string{ColSelfStudy, ColSocialMedia, ColFitness},
		Placeholder: "No data available for Self Study vs Social Media.",
		build:       buildSelfStudyScatter,
	},
	{
		Tab:         TabFitness,
		Title:       "Age of Subject, Time spent on Fitness and Health Issues",
		Required:    []string{ColAge, ColFitness, ColHealthIssue},
		Placeholder: "No data available for Stress Busters.",
		build:       buildFitnessScatter,
	},
	{
		Tab:         TabMedium,
		Title:       "Time spent on Online Class vs Medium",
		Required:    []string{ColOnlineClass, ColMedium},
		Placeholder: "No data available for Time Spent on Online Class vs Medium for Online Class.",
		build:       buildMediumBox,
	},
	{
		Tab:         TabSleep,
		Title:       "Time Spent on Sleep vs Time Spent on Social Media and Preferred Social media",
		Required:    []string{ColSleep, ColSocialMedia, ColPlatform},
		Placeholder: "No data available for Time Spent on Sleep vs Time Spent on Social Media.",
		build:       buildSleepBars,
	},
}

// Lookup returns the spec for a tab id.
func Lookup(tab TabID) (Spec, error) {
	for _, s := range Specs {
		if s.Tab == tab {
			return s, nil
		}
	}
	return Spec{}, fmt.Errorf("%w: %q", ErrUnknownTab, tab)
}

// ParseTab validates a tab id coming from a request. Blank means the default tab.
func ParseTab(raw string) (TabID, error) {
	if raw == "" {
		return DefaultTab, nil
	}
	spec, err := Lookup(TabID(raw))
	if err != nil {
		return "", err
	}
	// the canonical constant, never the caller's buffer
	return spec.Tab, nil
}

// Tab is an entry of the tab strip.
type Tab struct {
	Label string `json:"label"`
	Value TabID  `json:"value"`
}

// Tabs builds the tab strip, each title prefixed with the table label.
func Tabs(label string) []Tab {
	out := make([]Tab, len(Specs))
	for i, s := range Specs {
		out[i] = Tab{Label: fmt.Sprintf("%s - %s", label, s.Title), Value: s.Tab}
	}
	return out
}
