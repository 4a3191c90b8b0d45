package audit

// ChecksConfig is the root of a YAML audit configuration.
type ChecksConfig struct {
	Checks []CheckDefinition `yaml:"checks"`
}

// CheckDefinition declares one audit check over the rule collection.
type CheckDefinition struct {
	CheckID     string                 `yaml:"check_id"`
	Description string                 `yaml:"description"`
	Severity    string                 `yaml:"severity"` // "critical", "warning" or "info"
	Type        string                 `yaml:"type"`
	Parameters  map[string]interface{} `yaml:"parameters,omitempty"`
}

// DefaultChecksYAML is the audit configuration used when no file is given.
// It covers the misconfigurations that silently break collections runs.
const DefaultChecksYAML = `checks:
  - check_id: DUP-PRIO
    description: Active rules must not share an execution priority
    severity: warning
    type: duplicate_priority

  - check_id: TPL-REF
    description: Notification rules must reference an existing template
    severity: critical
    type: missing_template

  - check_id: TPL-CHAN
    description: Referenced templates must match the action's channel
    severity: critical
    type: channel_mismatch

  - check_id: COND-VAL
    description: Rules must carry a value for their declared condition type
    severity: critical
    type: condition_value_missing

  - check_id: EARLY-COV
    description: At least one active rule should fire within the first days overdue
    severity: warning
    type: coverage_gap
    parameters:
      max_day: 7

  - check_id: DORMANT
    description: Inactive rules pile up and hide the live configuration
    severity: info
    type: inactive_rules
    parameters:
      max_inactive: 5
`
