// Package intent разбирает распознанную речь в типизированные команды ассистента Jack.
package intent

import (
	"regexp"
	"strings"
)

// DefaultWakeWord - слово-триггер, без которого транскрипт игнорируется
const DefaultWakeWord = "jack"

// PoiCategories - словарь категорий для поиска объектов, порядок важен
var PoiCategories = []string{
	"fuel", "hospital", "restaurant", "hotel", "pharmacy",
	"bank", "school", "park", "supermarket", "police",
}

var (
	sourceRe      = regexp.MustCompile(`source(?: is| set to)? (.+)`)
	destinationRe = regexp.MustCompile(`destination(?: is| set to)? (.+)`)
)

// Parse сопоставляет текст команды (после слова-триггера) с командой.
// Функция тотальна: все, что не распознано, возвращается как Unknown.
func Parse(transcript string) Command {
	text := strings.ToLower(strings.TrimSpace(transcript))

	switch {
	case strings.Contains(text, "start navigation"):
		return Start()
	case strings.Contains(text, "stop navigation"):
		return Stop()
	}

	if m := sourceRe.FindStringSubmatch(text); m != nil {
		if place := strings.TrimSpace(m[1]); place != "" {
			return SetSource(place)
		}
	}
	if m := destinationRe.FindStringSubmatch(text); m != nil {
		if place := strings.TrimSpace(m[1]); place != "" {
			return SetDestination(place)
		}
	}

	switch {
	case strings.Contains(text, "reroute"), strings.Contains(text, "change route"):
		return Reroute()
	case strings.Contains(text, "emergency"):
		return Emergency()
	case strings.Contains(text, "nearest hospital"):
		return Find(TargetHospital)
	case strings.Contains(text, "nearest police"):
		return Find(TargetPolice)
	case strings.Contains(text, "traffic"):
		return Traffic()
	case strings.Contains(text, "ar mode"):
		return ToggleAR()
	}

	for _, category := range PoiCategories {
		if strings.Contains(text, category) {
			return PoiSearch(category)
		}
	}

	return Unknown(text)
}

// Gate отсекает транскрипты без слова-триггера
type Gate struct {
	re *regexp.Regexp
}

// NewGate создает фильтр для заданного слова-триггера (пустое слово - DefaultWakeWord)
func NewGate(wakeWord string) *Gate {
	word := strings.ToLower(strings.TrimSpace(wakeWord))
	if word == "" {
		word = DefaultWakeWord
	}
	return &Gate{re: regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\b`)}
}

// Strip возвращает текст без первого вхождения слова-триггера.
// ok == false означает, что транскрипт надо игнорировать целиком.
func (g *Gate) Strip(transcript string) (string, bool) {
	text := strings.ToLower(strings.TrimSpace(transcript))
	loc := g.re.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	rest := text[:loc[0]] + " " + text[loc[1]:]
	rest = strings.Trim(strings.Join(strings.Fields(rest), " "), " ,.!?")
	return rest, true
}
