package types

// Policy carries system-wide retry and resource defaults. The engine only
// checks presence; content is consumed by the downstream synthesizer.
type Policy struct {
	Retry     *RetryPolicy    `yaml:"retry,omitempty"`
	Resources *ResourcePolicy `yaml:"resources,omitempty"`
}

type RetryPolicy struct {
	MaxAttempts  int    `yaml:"max_attempts"`
	Backoff      string `yaml:"backoff"`
	InitialDelay string `yaml:"initial_delay,omitempty"`
}

type ResourcePolicy struct {
	Memory string `yaml:"memory,omitempty"`
	CPU    string `yaml:"cpu,omitempty"`
}

// DefaultPolicy is the canonical block inserted by policy defaulting.
// Absence of a policy is healed by inserting exactly this value, never by
// inferring one from document content.
func DefaultPolicy() *Policy {
	return &Policy{
		Retry: &RetryPolicy{
			MaxAttempts:  3,
			Backoff:      "exponential",
			InitialDelay: "1s",
		},
		Resources: &ResourcePolicy{
			Memory: "512Mi",
			CPU:    "0.5",
		},
	}
}
