package domain

// Contestant is one entry in the Sanremo lineup, immutable for a run.
type Contestant struct {
	Artist string `yaml:"artist"`
	Song   string `yaml:"song"`
}
