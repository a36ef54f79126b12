package tui

import (
	"fmt"
	"strings"

	"akiba/internal/api"
	"akiba/internal/ledger"
)

type contentItem struct {
	content api.ContentSummary
	maxDesc int
}

func (i contentItem) Title() string {
	if i.content.Featured {
		return FeaturedItemStyle.Render("★ " + i.content.Title)
	}
	return i.content.Title
}

func (i contentItem) Description() string {
	meta := fmt.Sprintf("%s • %s • %s • %d min • %d views",
		strings.ToLower(string(i.content.Category)),
		strings.ToLower(string(i.content.Difficulty)),
		strings.ToLower(string(i.content.ContentType)),
		i.content.DurationMinutes,
		i.content.ViewCount,
	)

	maxDesc := i.maxDesc
	if maxDesc <= 0 {
		maxDesc = 80
	}
	desc := truncateEnd(i.content.Description, maxDesc)

	return renderMuted(desc) + TimeStyle.Render(" • "+meta)
}

func (i contentItem) FilterValue() string { return i.content.Title }

type pathItem struct {
	path api.LearningPath
}

func (i pathItem) Title() string {
	title := i.path.Title
	if i.path.Enrolled {
		title = fmt.Sprintf("%s (%d%%)", title, i.path.ProgressPercent)
	}
	return title
}

func (i pathItem) Description() string {
	meta := fmt.Sprintf("%s • %d modules • ~%dh",
		strings.ToLower(string(i.path.Level)),
		i.path.ModuleCount,
		i.path.EstimatedHours,
	)
	return renderMuted(truncateEnd(i.path.Description, 80)) + TimeStyle.Render(" • "+meta)
}

func (i pathItem) FilterValue() string { return i.path.Title }

type webinarItem struct {
	webinar api.Webinar
}

func (i webinarItem) Title() string {
	if i.webinar.Registered {
		return "✓ " + i.webinar.Title
	}
	return i.webinar.Title
}

func (i webinarItem) Description() string {
	seats := ""
	if i.webinar.Capacity > 0 {
		seats = fmt.Sprintf(" • %d/%d seats", i.webinar.RegisteredCount, i.webinar.Capacity)
	}
	meta := fmt.Sprintf("%s • %s • %d min%s",
		i.webinar.Presenter,
		i.webinar.ScheduledAt.Format("Jan 2, 15:04"),
		i.webinar.DurationMinutes,
		seats,
	)
	return renderMuted(meta)
}

func (i webinarItem) FilterValue() string { return i.webinar.Title }

type challengeItem struct {
	challenge api.Challenge
}

func (i challengeItem) Title() string {
	if i.challenge.Joined {
		return "✓ " + i.challenge.Title
	}
	return i.challenge.Title
}

func (i challengeItem) Description() string {
	meta := fmt.Sprintf("target %s • %d days • %d participants",
		ledger.FormatAmount(i.challenge.TargetAmountCents, ""),
		i.challenge.DurationDays,
		i.challenge.ParticipantCount,
	)
	return renderMuted(meta)
}

func (i challengeItem) FilterValue() string { return i.challenge.Title }

type certificateItem struct {
	cert api.Certificate
}

func (i certificateItem) Title() string { return i.cert.Title }

func (i certificateItem) Description() string {
	return renderMuted(fmt.Sprintf("%s • issued %s",
		i.cert.CredentialID,
		i.cert.IssuedAt.Format("Jan 2, 2006"),
	))
}

func (i certificateItem) FilterValue() string { return i.cert.Title }

type txItem struct {
	tx api.Transaction
}

func (i txItem) Title() string {
	return fmt.Sprintf("%s  %s",
		ledger.FormatAmount(i.tx.AmountCents, i.tx.Currency),
		strings.ToLower(string(i.tx.Type)),
	)
}

func (i txItem) Description() string {
	desc := i.tx.CreatedAt.Format("Jan 2, 2006 15:04")
	if i.tx.Note != "" {
		desc += " • " + truncateEnd(i.tx.Note, 60)
	}
	return renderMuted(desc)
}

func (i txItem) FilterValue() string { return i.tx.Note }
