// Package businessplan models the founder's document library: business
// plans, strategy papers and other long-form documents.
package businessplan

import "time"

type DocType string

const (
	BusinessPlan DocType = "Business Plan"
	Strategy     DocType = "Strategy"
	Roadmap      DocType = "Roadmap"
	Financial    DocType = "Financial"
	Research     DocType = "Research"
	Playbook     DocType = "Playbook"
)

var DocTypes = []DocType{BusinessPlan, Strategy, Roadmap, Financial, Research, Playbook}

type Status string

const (
	Draft     Status = "Draft"
	Published Status = "Published"
	Archived  Status = "Archived"
)

var Statuses = []Status{Draft, Published, Archived}

// Document is the stored record. Pages is derived from Content whenever the
// content is written.
type Document struct {
	ID           string    `json:"id" bson:"id"`
	Title        string    `json:"title" bson:"title"`
	Type         DocType   `json:"type" bson:"type"`
	Status       Status    `json:"status" bson:"status"`
	Content      string    `json:"content" bson:"content"`
	Author       string    `json:"author" bson:"author"`
	Pages        int       `json:"pages" bson:"pages"`
	LastModified time.Time `json:"lastModified" bson:"lastModified"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

func (d Document) RecordID() string { return d.ID }

// DocumentInput is the payload of Add. Type defaults to Business Plan.
type DocumentInput struct {
	Title   string  `json:"title"`
	Type    DocType `json:"type"`
	Content string  `json:"content"`
	Author  string  `json:"author,omitempty"`
}

// DocumentPatch is the payload of Update. Status changes go through Publish.
type DocumentPatch struct {
	Title   *string  `json:"title,omitempty"`
	Type    *DocType `json:"type,omitempty"`
	Content *string  `json:"content,omitempty"`
	Author  *string  `json:"author,omitempty"`
}

type Summary struct {
	Total      int             `json:"total"`
	ByStatus   map[Status]int  `json:"byStatus"`
	ByType     map[DocType]int `json:"byType"`
	TotalPages int             `json:"totalPages"`
}

// Export describes an uploaded copy of a document.
type Export struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
