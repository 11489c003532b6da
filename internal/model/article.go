package model

// Article data model. Name is the lookup key and never changes once the
// record is seeded; only Upvotes and Comments are mutated by the API.
type Article struct {
	Name     string    `json:"name" bson:"name" yaml:"name"`
	Title    string    `json:"title" bson:"title" yaml:"title"`
	Content  []string  `json:"content" bson:"content" yaml:"content"`
	Upvotes  int64     `json:"upvotes" bson:"upvotes" yaml:"upvotes"`
	Comments []Comment `json:"comments" bson:"comments" yaml:"comments"`
}

// Comment is a single reader comment, kept in insertion order.
type Comment struct {
	Username string `json:"username" bson:"username" yaml:"username"`
	Text     string `json:"text" bson:"text" yaml:"text"`
}

// Clone returns a deep copy, so callers never share slices with a store.
func (a *Article) Clone() *Article {
	if a == nil {
		return nil
	}

	c := *a
	c.Content = append([]string(nil), a.Content...)
	c.Comments = append([]Comment{}, a.Comments...)

	return &c
}
