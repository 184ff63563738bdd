package web

import "github.com/matzehuels/pawfetch/pkg/card"

// cardView is the template and JSON model of one card.
type cardView struct {
	Image      string `json:"image"`
	Breed      string `json:"breed"`
	Name       string `json:"name"`
	NameLabel  string `json:"name_label"`
	BreedLabel string `json:"breed_label"`
	Filename   string `json:"filename"`
	Loading    bool   `json:"loading"`
	Dark       bool   `json:"dark"`
	ThemeIcon  string `json:"-"`
}

func newCardView(s card.State) cardView {
	return cardView{
		Image:      s.Image,
		Breed:      s.Breed,
		Name:       s.Name,
		NameLabel:  s.NameLabel(),
		BreedLabel: s.BreedLabel(),
		Filename:   s.DownloadFilename(),
		Loading:    s.Loading,
		Dark:       s.Dark(),
		ThemeIcon:  s.Theme.Icon(),
	}
}
