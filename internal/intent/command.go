package intent

import "fmt"

// Intent - вид голосовой команды
type Intent string

const (
	IntentStart          Intent = "start"
	IntentStop           Intent = "stop"
	IntentReroute        Intent = "reroute"
	IntentEmergency      Intent = "emergency"
	IntentTraffic        Intent = "traffic"
	IntentToggleAR       Intent = "toggle_ar"
	IntentSetSource      Intent = "set_source"
	IntentSetDestination Intent = "set_destination"
	IntentFind           Intent = "find"
	IntentPoiSearch      Intent = "poi_search"
	IntentUnknown        Intent = "unknown"
)

// Target - цель команды Find
type Target string

const (
	TargetHospital Target = "hospital"
	TargetPolice   Target = "police"
)

// Command - результат разбора транскрипта.
// Заполнено только поле, соответствующее Intent.
type Command struct {
	Intent   Intent `json:"intent"`
	Place    string `json:"place,omitempty"`
	Target   Target `json:"target,omitempty"`
	Category string `json:"category,omitempty"`
	RawText  string `json:"raw_text,omitempty"`
}

func (c Command) String() string {
	switch c.Intent {
	case IntentSetSource, IntentSetDestination:
		return fmt.Sprintf("%s{%s}", c.Intent, c.Place)
	case IntentFind:
		return fmt.Sprintf("%s{%s}", c.Intent, c.Target)
	case IntentPoiSearch:
		return fmt.Sprintf("%s{%s}", c.Intent, c.Category)
	case IntentUnknown:
		return fmt.Sprintf("%s{%q}", c.Intent, c.RawText)
	}
	return string(c.Intent)
}

func Start() Command     { return Command{Intent: IntentStart} }
func Stop() Command      { return Command{Intent: IntentStop} }
func Reroute() Command   { return Command{Intent: IntentReroute} }
func Emergency() Command { return Command{Intent: IntentEmergency} }
func Traffic() Command   { return Command{Intent: IntentTraffic} }
func ToggleAR() Command  { return Command{Intent: IntentToggleAR} }

func SetSource(place string) Command {
	return Command{Intent: IntentSetSource, Place: place}
}

func SetDestination(place string) Command {
	return Command{Intent: IntentSetDestination, Place: place}
}

func Find(target Target) Command {
	return Command{Intent: IntentFind, Target: target}
}

func PoiSearch(category string) Command {
	return Command{Intent: IntentPoiSearch, Category: category}
}

func Unknown(raw string) Command {
	return Command{Intent: IntentUnknown, RawText: raw}
}
