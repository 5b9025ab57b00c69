package core

// DisplayLabel returns the label to show for a record.
// Confidence is on a 0-100 scale and threshold on 0-1.
func DisplayLabel(rec EmailRecord, threshold float64) (string, bool) {
	if rec.Confidence/100 < threshold {
		return UncertainLabel, true
	}
	return rec.Label, false
}

// BuildCards converts records to cards, applying the threshold to each one
func BuildCards(records []EmailRecord, threshold float64) []Card {
	cards := make([]Card, 0, len(records))
	for _, rec := range records {
		label, uncertain := DisplayLabel(rec, threshold)
		cards = append(cards, Card{
			Subject:    rec.Subject,
			From:       rec.From,
			Label:      label,
			Confidence: rec.Confidence,
			Uncertain:  uncertain,
		})
	}
	return cards
}
