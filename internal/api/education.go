package api

import (
	"context"
	"net/url"
)

// ListPaths returns every learning path with the member's enrollment state.
func (c *Client) ListPaths(ctx context.Context) ([]LearningPath, error) {
	var paths []LearningPath
	if err := c.get(ctx, "/api/v1/education/paths", nil, &paths); err != nil {
		return nil, err
	}
	return paths, nil
}

// ListWebinars returns upcoming webinars, soonest first.
func (c *Client) ListWebinars(ctx context.Context) ([]Webinar, error) {
	var webinars []Webinar
	if err := c.get(ctx, "/api/v1/education/webinars", nil, &webinars); err != nil {
		return nil, err
	}
	return webinars, nil
}

// RegisterWebinar reserves a seat and returns the updated webinar record.
func (c *Client) RegisterWebinar(ctx context.Context, id string) (*Webinar, error) {
	var webinar Webinar
	if err := c.post(ctx, "/api/v1/education/webinars/"+url.PathEscape(id)+"/register", nil, &webinar); err != nil {
		return nil, err
	}
	return &webinar, nil
}

// ListChallenges returns open savings challenges.
func (c *Client) ListChallenges(ctx context.Context) ([]Challenge, error) {
	var challenges []Challenge
	if err := c.get(ctx, "/api/v1/education/challenges", nil, &challenges); err != nil {
		return nil, err
	}
	return challenges, nil
}

// JoinChallenge enrolls the member and returns the updated challenge record.
func (c *Client) JoinChallenge(ctx context.Context, id string) (*Challenge, error) {
	var challenge Challenge
	if err := c.post(ctx, "/api/v1/education/challenges/"+url.PathEscape(id)+"/join", nil, &challenge); err != nil {
		return nil, err
	}
	return &challenge, nil
}

// ListCertificates returns the member's earned certificates.
func (c *Client) ListCertificates(ctx context.Context) ([]Certificate, error) {
	var certs []Certificate
	if err := c.get(ctx, "/api/v1/education/certificates", nil, &certs); err != nil {
		return nil, err
	}
	return certs, nil
}
