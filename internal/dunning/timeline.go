package dunning

import (
	"fmt"
	"sort"
	"strings"
)

// TimelineEvent is one marker on the day-axis visualization. Events are
// derived from the current rule collection on every render and never stored.
type TimelineEvent struct {
	Day            int        `json:"day"`
	Action         ActionType `json:"action"`
	BadgeLabel     string     `json:"badgeLabel"`
	Color          string     `json:"color"`
	TooltipContent string     `json:"tooltipContent"`
	Above          bool       `json:"above"`
	AxisOffset     float64    `json:"axisOffset"` // percent along the axis, including the 2% margin
}

// Timeline is the complete derived visualization: ordered events plus the
// axis scale they are positioned on.
type Timeline struct {
	Events []TimelineEvent `json:"events"`
	MaxDay int             `json:"maxDay"`
	Ticks  []int           `json:"ticks"`
}

// actionColor maps action types to badge colors. Unknown actions render gray.
func actionColor(a ActionType) string {
	switch a {
	case ActionSendEmail:
		return "blue"
	case ActionThrottleSpeed:
		return "orange"
	case ActionRestrictService:
		return "red"
	case ActionCreateBpoTask:
		return "purple"
	default:
		return "gray"
	}
}

// DeriveTimeline projects the rule collection onto a day axis. Only active
// rules with a DAYS_OVERDUE condition and a populated integer value have a
// natural position; everything else is excluded. Events are sorted ascending
// by day with a stable sort, so equal-day rules keep their fetch order.
func DeriveTimeline(rules []Rule) Timeline {
	var selected []Rule
	for _, r := range rules {
		if r.IsActive && r.ConditionType == ConditionDaysOverdue && r.ConditionValueInteger != nil {
			selected = append(selected, r)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return *selected[i].ConditionValueInteger < *selected[j].ConditionValueInteger
	})

	maxDay := 15
	if n := len(selected); n > 0 {
		last := *selected[n-1].ConditionValueInteger
		if padded := ((last + 5 + 4) / 5) * 5; padded > maxDay {
			maxDay = padded
		}
	}

	var ticks []int
	for day := 0; day <= maxDay; day += 5 {
		ticks = append(ticks, day)
	}

	events := make([]TimelineEvent, 0, len(selected))
	for i, r := range selected {
		day := *r.ConditionValueInteger
		events = append(events, TimelineEvent{
			Day:            day,
			Action:         r.ActionType,
			BadgeLabel:     badgeLabel(r),
			Color:          actionColor(r.ActionType),
			TooltipContent: tooltip(r),
			Above:          i%2 == 0,
			AxisOffset:     2 + float64(day)/float64(maxDay)*96,
		})
	}

	return Timeline{Events: events, MaxDay: maxDay, Ticks: ticks}
}

// badgeLabel compacts the action into the short label shown on the event
// badge: "BPO (H)" for BPO tasks with a priority, "Email" for email sends,
// the plain action label otherwise.
func badgeLabel(r Rule) string {
	if r.ActionType == ActionCreateBpoTask && r.BpoTaskPriority != nil && *r.BpoTaskPriority != "" {
		return fmt.Sprintf("BPO (%s)", string(*r.BpoTaskPriority)[:1])
	}
	if r.ActionType == ActionSendEmail {
		return "Email"
	}
	return ActionLabel(r.ActionType)
}

func tooltip(r Rule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\nAction: %s", r.RuleName, ActionLabel(r.ActionType))
	if r.ActionType == ActionSendEmail && r.TemplateName != "" {
		fmt.Fprintf(&b, "\nTemplate: %s", r.TemplateName)
	} else if r.ActionType == ActionCreateBpoTask && r.BpoTaskPriority != nil && *r.BpoTaskPriority != "" {
		fmt.Fprintf(&b, "\nPriority: %s", *r.BpoTaskPriority)
	}
	fmt.Fprintf(&b, "\nCondition: Days Overdue >= %d", *r.ConditionValueInteger)

	applies := "All"
	if r.AppliesToPlanType != "" {
		applies = string(r.AppliesToPlanType)
	}
	fmt.Fprintf(&b, "\nApplies To: %s", applies)
	return b.String()
}
