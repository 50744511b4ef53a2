package official

// Official is a resolved notification recipient. Instances are immutable
// snapshots taken at resolution time; the roster itself is owned by the
// excluded records service.
type Official struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Email    string   `json:"email" yaml:"email"`
	Position string   `json:"position" yaml:"position"`
	District string   `json:"district" yaml:"district"`
	Tags     []string `json:"tags" yaml:"tags"`
}

// Subscription tags recognised by the recipient resolver
const (
	TagCriticalAlerts = "critical_alerts"
	TagWaterQuality   = "water_quality"
	TagDailySummary   = "daily_summary"
)

// HasTag reports whether the official subscribes to the given tag
func (o *Official) HasTag(tag string) bool {
	for _, t := range o.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Filter contains roster lookup options
type Filter struct {
	District string
	Tag      string
}
