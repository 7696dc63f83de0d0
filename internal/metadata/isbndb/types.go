package isbndb

// bookResponse is the wire shape of GET /book/{isbn}.
type bookResponse struct {
	Book bookRecord `json:"book"`
}

type bookRecord struct {
	Title         string   `json:"title"`
	TitleLong     string   `json:"title_long"`
	Authors       []string `json:"authors"`
	Publisher     string   `json:"publisher"`
	DatePublished string   `json:"date_published"`
	Pages         int      `json:"pages"`
	Language      string   `json:"language"`
	Synopsis      string   `json:"synopsis"`
	Overview      string   `json:"overview"`
	Image         string   `json:"image"`
	ISBN13        string   `json:"isbn13"`
	ISBN          string   `json:"isbn"`
}

// BookResult is the normalized lookup result.
type BookResult struct {
	ISBN        string   `json:"isbn"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Authors     []string `json:"authors,omitempty"`
	Publisher   string   `json:"publisher,omitempty"`
	PublishDate string   `json:"publishDate,omitempty"`
	PageCount   int      `json:"pageCount,omitempty"`
	Language    string   `json:"language,omitempty"`
	Description string   `json:"description,omitempty"`
	CoverURL    string   `json:"coverUrl,omitempty"`
}
