package models

// ImportBucket is one partition of a roster import outcome.
type ImportBucket struct {
	Count int      `json:"count"`
	IDs   []string `json:"ids"`
}

// ImportFailure records a per-item insert failure inside a roster import.
type ImportFailure struct {
	StudentUserID string `json:"student_user_id"`
	Reason        string `json:"reason"`
}

// ImportResult partitions every input id of a roster import into exactly one
// bucket. Failed collects ids whose independent insert failed; the batch
// itself still succeeds.
type ImportResult struct {
	Registered        ImportBucket    `json:"registered"`
	AlreadyRegistered ImportBucket    `json:"already_registered"`
	NotFound          ImportBucket    `json:"not_found"`
	Failed            []ImportFailure `json:"failed,omitempty"`
}
