package edges

// AuthorDetail describes a referenced author through its most-retweeted tweet
type AuthorDetail struct {
	ID           string `json:"id"`
	ScreenName   string `json:"screen_name"`
	Text         string `json:"text"`
	CreatedAt    string `json:"created_at"`
	RetweetCount int64  `json:"retweet_count"`
}

// CollectAuthorDetails returns, per referenced author, the details of the
// retweet record with the highest retweet count. The first record seen wins ties.
func CollectAuthorDetails(records []InteractionRecord) map[string]AuthorDetail {
	details := make(map[string]AuthorDetail)
	for _, rec := range records {
		if !rec.IsRetweet() || rec.ReferencedAuthorID == "" {
			continue
		}
		current, seen := details[rec.ReferencedAuthorID]
		if seen && current.RetweetCount >= rec.RetweetCount {
			continue
		}
		details[rec.ReferencedAuthorID] = AuthorDetail{
			ID:           rec.ReferencedAuthorID,
			ScreenName:   rec.ScreenName,
			Text:         rec.Text,
			CreatedAt:    rec.CreatedAt,
			RetweetCount: rec.RetweetCount,
		}
	}
	return details
}
