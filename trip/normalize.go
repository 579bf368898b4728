package trip

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tripweaver/tripweaver/llm"
)

// Deterministic per-facet fallbacks, used whenever a facet is missing or
// empty after parsing the model response.
const (
	fallbackWeather       = "建议查询当地天气预报获取最新天气信息"
	fallbackAttraction    = "推荐查询当地热门景点"
	fallbackAccommodation = "建议根据预算选择合适档次的酒店或民宿"
)

var fallbackTips = []string{
	"提前预订酒店和景点门票",
	"准备常用药品",
	"注意当地风俗习惯",
}

// fallbackItinerary generates the per-day fallback so the itinerary length
// always equals the requested day count.
func fallbackItinerary(days int) []string {
	itinerary := make([]string, days)
	for i := range itinerary {
		itinerary[i] = fmt.Sprintf("第%d天的行程安排", i+1)
	}
	return itinerary
}

// NormalizePlanDetails coerces raw model output into well-formed plan
// details. It is total: any input, including non-JSON garbage, produces a
// PlanDetails with all five facets non-empty. A facet that survives parsing
// is kept as-is; only missing or empty facets are replaced with their
// deterministic fallback.
func NormalizePlanDetails(content string, days int) PlanDetails {
	var parsed map[string]any
	if raw := llm.ExtractJSON(content); raw != "" {
		// A parse failure leaves parsed nil, which degrades to full fallback.
		_ = json.Unmarshal([]byte(raw), &parsed)
	}

	details := PlanDetails{
		Weather:       stringField(parsed["weather"]),
		Attractions:   normalizeAttractions(parsed["attractions"]),
		Itinerary:     stringSlice(parsed["itinerary"]),
		Accommodation: stringField(parsed["accommodation"]),
		Tips:          stringSlice(parsed["tips"]),
	}

	if details.Weather == "" {
		details.Weather = fallbackWeather
	}
	if len(details.Attractions) == 0 {
		details.Attractions = []Attraction{{Text: fallbackAttraction}}
	}
	if len(details.Itinerary) == 0 {
		details.Itinerary = fallbackItinerary(days)
	}
	if details.Accommodation == "" {
		details.Accommodation = fallbackAccommodation
	}
	if len(details.Tips) == 0 {
		details.Tips = append([]string(nil), fallbackTips...)
	}

	return details
}

// normalizeAttractions reconciles the two entry shapes the model produces:
// plain strings stay as-is, records are mapped through the recognized key
// variants with missing subfields defaulting to empty text.
func normalizeAttractions(v any) []Attraction {
	entries, ok := v.([]any)
	if !ok {
		return nil
	}

	attractions := make([]Attraction, 0, len(entries))
	for _, entry := range entries {
		switch e := entry.(type) {
		case string:
			attractions = append(attractions, Attraction{Text: e})
		case map[string]any:
			attractions = append(attractions, Attraction{
				Name:        firstKey(e, "name", "名称"),
				Address:     firstKey(e, "address", "地址", "说明"),
				Description: firstKey(e, "description", "说明", "描述"),
			})
		default:
			attractions = append(attractions, Attraction{Text: stringValue(entry)})
		}
	}
	return attractions
}

// firstKey returns the first non-empty value among the given keys.
func firstKey(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := stringField(m[key]); s != "" {
			return s
		}
	}
	return ""
}

// stringSlice coerces a JSON array into text entries, stringifying
// non-text elements.
func stringSlice(v any) []string {
	entries, ok := v.([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if s := stringValue(entry); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// stringField returns v as trimmed text when it is a string, "" otherwise.
func stringField(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// stringValue renders any JSON value as text.
func stringValue(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
