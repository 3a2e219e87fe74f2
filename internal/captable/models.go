// Package captable models the equity ledger: stakeholders, their share
// class and their derived ownership percentage.
package captable

import "time"

type ShareType string

const (
	Common    ShareType = "Common"
	Preferred ShareType = "Preferred"
	Options   ShareType = "Options"
)

// ShareTypes lists the accepted share classes in display order.
var ShareTypes = []ShareType{Common, Preferred, Options}

// Stakeholder is the stored record. Its ownership percentage depends on the
// whole table and is never persisted; see Holding.
type Stakeholder struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	Shares    int64     `json:"shares" bson:"shares"`
	Type      ShareType `json:"type" bson:"type"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (s Stakeholder) RecordID() string { return s.ID }

// Holding is a stakeholder together with its percentage of the snapshot it
// was read from.
type Holding struct {
	Stakeholder
	Percentage float64 `json:"percentage"`
}

// StakeholderInput is the payload of Add. Type defaults to Common.
type StakeholderInput struct {
	Name   string    `json:"name"`
	Shares *int64    `json:"shares"`
	Type   ShareType `json:"type"`
	Email  string    `json:"email,omitempty"`
}

// StakeholderPatch is the payload of Update; nil fields are left unchanged.
type StakeholderPatch struct {
	Name   *string    `json:"name,omitempty"`
	Shares *int64     `json:"shares,omitempty"`
	Type   *ShareType `json:"type,omitempty"`
	Email  *string    `json:"email,omitempty"`
}

// Summary is the aggregate view of a cap table. IssuedOfAuthorized is only
// reported when an authorized share count is configured.
type Summary struct {
	TotalShares        int64               `json:"totalShares"`
	Stakeholders       int                 `json:"stakeholders"`
	SharesByType       map[ShareType]int64 `json:"sharesByType"`
	CountByType        map[ShareType]int   `json:"countByType"`
	AuthorizedShares   int64               `json:"authorizedShares,omitempty"`
	IssuedOfAuthorized *float64            `json:"issuedOfAuthorized,omitempty"`
}
