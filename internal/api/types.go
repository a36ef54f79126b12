package api

import (
	"time"
)

// ContentSummary is one entry in a content listing. The discovery engine
// passes these through untouched; only the views render their fields.
type ContentSummary struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Category        Category    `json:"category"`
	Difficulty      Difficulty  `json:"difficulty"`
	ContentType     ContentType `json:"content_type"`
	DurationMinutes int         `json:"duration_minutes"`
	ViewCount       int         `json:"view_count"`
	LikeCount       int         `json:"like_count"`
	ThumbnailURL    string      `json:"thumbnail_url"`
	Featured        bool        `json:"is_featured"`
	Tags            []string    `json:"tags"`
}

// ContentDetail is the full record behind a summary, fetched on open.
// Body is markdown.
type ContentDetail struct {
	ContentSummary
	Body        string    `json:"body"`
	Author      string    `json:"author"`
	PublishedAt time.Time `json:"published_at"`
	SourceURL   string    `json:"source_url"`
}

// ContentPage is the paged listing shape: one page of results plus the
// server-side total match count.
type ContentPage struct {
	Results []ContentSummary `json:"results"`
	Total   int              `json:"total"`
}

// ContentFilters carries the recognized listing constraints. Zero values and
// the "all" sentinels are omitted from the request.
type ContentFilters struct {
	Category    Category
	Difficulty  Difficulty
	ContentType ContentType
	Search      string
	SortBy      SortOrder
}

type LearningPath struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Level           Difficulty `json:"level"`
	ModuleCount     int        `json:"module_count"`
	EstimatedHours  int        `json:"estimated_hours"`
	Enrolled        bool       `json:"enrolled"`
	ProgressPercent int        `json:"progress_percent"`
	Tags            []string   `json:"tags"`
}

type Webinar struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Presenter       string    `json:"presenter"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	MeetingURL      string    `json:"meeting_url"`
	Registered      bool      `json:"registered"`
	Capacity        int       `json:"capacity"`
	RegisteredCount int       `json:"registered_count"`
}

type Challenge struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	TargetAmountCents int64     `json:"target_amount_cents"`
	DurationDays      int       `json:"duration_days"`
	ParticipantCount  int       `json:"participant_count"`
	StartsAt          time.Time `json:"starts_at"`
	Joined            bool      `json:"joined"`
}

type Certificate struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	CredentialID string    `json:"credential_id"`
	IssuedAt     time.Time `json:"issued_at"`
	DownloadURL  string    `json:"download_url"`
}

// TransactionType enumerates the movements a chama ledger records.
type TransactionType string

const (
	TxDeposit          TransactionType = "DEPOSIT"
	TxWithdrawal       TransactionType = "WITHDRAWAL"
	TxContribution     TransactionType = "CONTRIBUTION"
	TxLoanDisbursement TransactionType = "LOAN_DISBURSEMENT"
	TxLoanRepayment    TransactionType = "LOAN_REPAYMENT"
	TxInterest         TransactionType = "INTEREST"
	TxPenalty          TransactionType = "PENALTY"
)

// TransactionTypes lists every type the history view can filter by.
func TransactionTypes() []TransactionType {
	return []TransactionType{
		TxDeposit,
		TxWithdrawal,
		TxContribution,
		TxLoanDisbursement,
		TxLoanRepayment,
		TxInterest,
		TxPenalty,
	}
}

type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	AmountCents int64           `json:"amount_cents"`
	Currency    string          `json:"currency"`
	Note        string          `json:"note"`
	CreatedAt   time.Time       `json:"created_at"`
}

type TransactionPage struct {
	Results []Transaction `json:"results"`
	Total   int           `json:"total"`
}

type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	MemberSince time.Time `json:"member_since"`
}

// Session is what a successful login returns.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

// Expired reports whether the session token is past its expiry.
func (s *Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}
