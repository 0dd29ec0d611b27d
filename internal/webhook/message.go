package webhook

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var placeholderRe = regexp.MustCompile(`\{([a-zA-Z_]+)\}`)

// Render substitutes the recognized placeholders into a message template:
// {app_name}, {timestamp}, {date}, {time}, {day}, {month}, {year}, all
// resolved against the given app name and clock reading. An unknown
// placeholder yields an explanatory error string in place of the message;
// the send itself still proceeds.
func Render(template, appName string, now time.Time) string {
	vars := map[string]string{
		"app_name":  appName,
		"timestamp": now.Format("2006-01-02 15:04:05"),
		"date":      now.Format("2006-01-02"),
		"time":      now.Format("15:04:05"),
		"day":       now.Format("Monday"),
		"month":     now.Format("January"),
		"year":      now.Format("2006"),
	}

	for _, m := range placeholderRe.FindAllStringSubmatch(template, -1) {
		if _, ok := vars[m[1]]; !ok {
			return fmt.Sprintf("Error in message format: unknown variable %q", m[1])
		}
	}
	return placeholderRe.ReplaceAllStringFunc(template, func(s string) string {
		return vars[strings.Trim(s, "{}")]
	})
}
