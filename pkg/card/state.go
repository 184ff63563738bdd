package card

// FallbackName is shown whenever a fetch cycle fails.
const FallbackName = "Buddy"

// Placeholder copy for empty fields.
const (
	NamePlaceholder  = "Fetching name..."
	BreedPlaceholder = "Unknown"
	DefaultFilename  = "dog.jpg"
)

// State is the presentation state of one card view.
//
// A State is owned by exactly one view and is not safe for concurrent use;
// views that handle events on several goroutines must guard it themselves.
// The zero value is an empty, light-themed card with no cycle in flight.
type State struct {
	Image   string `json:"image"`
	Breed   string `json:"breed"`
	Name    string `json:"name"`
	Loading bool   `json:"loading"`
	Theme   Theme  `json:"-"`

	seq uint64
}

// Result is the outcome of one fetch cycle.
type Result struct {
	Seq   uint64
	Image string // empty if the image request failed
	Breed string
	Name  string
	Err   error
}

// Begin starts a fetch cycle and returns its sequence number.
// Loading stays true until [State.Finish] is called with a result carrying
// the latest sequence number.
func (s *State) Begin() uint64 {
	s.seq++
	s.Loading = true
	return s.seq
}

// Latest returns the sequence number of the most recently started cycle.
func (s *State) Latest() uint64 { return s.seq }

// Finish applies the result of a fetch cycle.
//
// Results from a superseded cycle are discarded and Finish returns false.
// Otherwise the successful fields replace Image, Breed and Name together,
// a failed result sets Name to [FallbackName], and Loading is cleared.
func (s *State) Finish(r Result) bool {
	if r.Seq != s.seq {
		return false
	}
	if r.Image != "" {
		s.Image = r.Image
		s.Breed = r.Breed
	}
	if r.Err != nil {
		s.Name = FallbackName
	} else {
		s.Name = r.Name
	}
	s.Loading = false
	return true
}

// ToggleTheme flips between the light and dark palettes.
func (s *State) ToggleTheme() {
	s.Theme = s.Theme.Toggle()
}

// Dark reports whether the dark palette is selected.
func (s State) Dark() bool { return s.Theme.IsDark() }

// NameLabel returns the text shown for the name.
func (s State) NameLabel() string {
	if s.Name == "" {
		return NamePlaceholder
	}
	return s.Name
}

// BreedLabel returns the text shown for the breed.
func (s State) BreedLabel() string {
	if s.Breed == "" {
		return BreedPlaceholder
	}
	return s.Breed
}

// DownloadFilename returns the suggested filename for saving the image.
func (s State) DownloadFilename() string {
	return DownloadFilename(s.Name)
}

// DownloadFilename returns "<name>.jpg", or [DefaultFilename] when name is empty.
func DownloadFilename(name string) string {
	if name == "" {
		return DefaultFilename
	}
	return name + ".jpg"
}
