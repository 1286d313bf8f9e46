// Package specimen provides the fixed content records shown on oasis cards.
package specimen

// TagType is the almanac-style verdict printed in the card seal.
type TagType string

const (
	TagAuspicious   TagType = "宜" // Favourable activity
	TagInauspicious TagType = "忌" // Activity to avoid
)

// Preset is one immutable fortune record a card can be generated from.
type Preset struct {
	Name         string  `yaml:"name" json:"name"`                                     // Plant name (e.g., "反卷芦荟")
	Image        string  `yaml:"image" json:"image"`                                   // Image reference: URL, file:// URL or local path
	TagType      TagType `yaml:"tag_type" json:"tag_type"`                             // 宜 or 忌
	TagText      string  `yaml:"tag_text" json:"tag_text"`                             // Activity the tag applies to
	Quote        string  `yaml:"quote" json:"quote"`                                   // The fortune itself
	CTA          string  `yaml:"cta" json:"cta"`                                       // Call-to-action line
	Illustration bool    `yaml:"illustration,omitempty" json:"illustration,omitempty"` // Image is a flat illustration rather than a photo
}

// Texts holds the fixed interface copy.
type Texts struct {
	AppName        string `yaml:"app_name"`
	StartTitle     string `yaml:"start_title"`
	StartHeadline  string `yaml:"start_headline"`
	StartSubtitle  string `yaml:"start_subtitle"`
	ButtonGenerate string `yaml:"button_generate"`
	ButtonSub      string `yaml:"button_sub"`
	ResultTitle    string `yaml:"result_title"`
	Collection     string `yaml:"collection"`
	SpecimenNo     string `yaml:"specimen_no"`
	SaveFailed     string `yaml:"save_failed"`
}

// Merge returns t with every empty field filled from fallback.
func (t Texts) Merge(fallback Texts) Texts {
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&t.AppName, fallback.AppName)
	fill(&t.StartTitle, fallback.StartTitle)
	fill(&t.StartHeadline, fallback.StartHeadline)
	fill(&t.StartSubtitle, fallback.StartSubtitle)
	fill(&t.ButtonGenerate, fallback.ButtonGenerate)
	fill(&t.ButtonSub, fallback.ButtonSub)
	fill(&t.ResultTitle, fallback.ResultTitle)
	fill(&t.Collection, fallback.Collection)
	fill(&t.SpecimenNo, fallback.SpecimenNo)
	fill(&t.SaveFailed, fallback.SaveFailed)
	return t
}
