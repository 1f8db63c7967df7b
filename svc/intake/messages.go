package intake

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed messages.yaml
var messagesYAML []byte

var catalog = mustLoadCatalog(messagesYAML)

func mustLoadCatalog(data []byte) map[string]string {
	m := make(map[string]string)
	if err := yaml.Unmarshal(data, &m); err != nil {
		panic(fmt.Sprintf("intake: invalid message catalog: %v", err))
	}
	return m
}

// Message renders the text for a violation code with values substituted
// for "{key}" placeholders. Unknown codes render as the code itself.
func Message(code string, values map[string]any) string {
	msg, ok := catalog[code]
	if !ok {
		return code
	}
	if !strings.Contains(msg, "{") {
		return msg
	}
	for k, v := range values {
		msg = strings.ReplaceAll(msg, "{"+k+"}", fmt.Sprint(v))
	}
	return msg
}

// Codes lists every code in the catalog. Used by tests to check coverage.
func Codes() []string {
	codes := make([]string, 0, len(catalog))
	for code := range catalog {
		codes = append(codes, code)
	}
	return codes
}
