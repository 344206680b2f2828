package models

const (
	DocTypeStatute = "statute"
	StatusInForce  = "in force"
)

// IndexEntry is one law discovered on a yearly listing page. Month and Day
// are kept as the zero-padded strings taken from the canonical URL.
type IndexEntry struct {
	Seq       int    `json:"seq" bson:"seq"`
	Title     string `json:"title" bson:"title"`
	Year      string `json:"year" bson:"year"`
	Month     string `json:"month" bson:"month"`
	Day       string `json:"day" bson:"day"`
	Numac     string `json:"numac" bson:"numac"`
	URL       string `json:"url" bson:"url"`
	Source    string `json:"source,omitempty" bson:"source,omitempty"`
	Published string `json:"published,omitempty" bson:"published,omitempty"`
}

type Article struct {
	Ref     string `json:"ref" bson:"ref"`
	Section string `json:"section" bson:"section"`
	Title   string `json:"title" bson:"title"`
	Content string `json:"content" bson:"content"`
	Chapter string `json:"chapter,omitempty" bson:"chapter,omitempty"`
}

// LawDocument is the assembled record for one law in one language. Two
// documents sharing a Numac are the bilingual pair of the same law.
type LawDocument struct {
	ID       string    `json:"id" bson:"id"`
	Type     string    `json:"type" bson:"type"`
	Title    string    `json:"title" bson:"title"`
	Status   string    `json:"status" bson:"status"`
	IssuedAt string    `json:"issued_at" bson:"issued_at"`
	URL      string    `json:"url" bson:"url"`
	Language string    `json:"language" bson:"language"`
	Numac    string    `json:"numac" bson:"numac"`
	InForce  string    `json:"entry_into_force,omitempty" bson:"entry_into_force,omitempty"`
	Source   string    `json:"source,omitempty" bson:"source,omitempty"`
	Articles []Article `json:"articles" bson:"articles"`
}
