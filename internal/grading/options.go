package grading

// Option configures a calculation via the functional options pattern.
type Option func(*config)

type config struct {
	Scale     Scale
	NameWidth int // column the credits start at when rendering
}

// DefaultNameWidth is the width of the course name column.
const DefaultNameWidth = 50

// WithScale replaces every table at once.
func WithScale(s Scale) Option {
	return func(c *config) {
		c.Scale = s
	}
}

// WithGradePoints overrides the grade → point table.
func WithGradePoints(table map[string]float64) Option {
	return func(c *config) {
		c.Scale.GradePoints = table
	}
}

// WithGradeLetters overrides the grade → letter table.
func WithGradeLetters(table map[string]string) Option {
	return func(c *config) {
		c.Scale.GradeLetters = table
	}
}

// WithLetterPoints overrides the letter → point table.
func WithLetterPoints(table map[string]float64) Option {
	return func(c *config) {
		c.Scale.LetterPoints = table
	}
}

// WithExclusions overrides the courses left out of every aggregate.
func WithExclusions(codes ...string) Option {
	return func(c *config) {
		c.Scale.Excluded = codes
	}
}

// WithNameWidth sets the course name column width used by RenderTranscript.
func WithNameWidth(width int) Option {
	return func(c *config) {
		if width >= 0 {
			c.NameWidth = width
		}
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{
		Scale:     DefaultScale(),
		NameWidth: DefaultNameWidth,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
