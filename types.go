package site

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post status values stored in the blogs collection. Drafts exist in the
// collection but are never visible through the query layer.
const (
	StatusPublished = "published"
	StatusDraft     = "draft"
)

// BlogPost is a document in the blogs collection. Content is authored
// out-of-band; this service only reads it.
type BlogPost struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Slug            string             `bson:"slug" json:"slug"`
	Excerpt         string             `bson:"excerpt" json:"excerpt"`
	Content         string             `bson:"content" json:"content"`
	Author          string             `bson:"author" json:"author"`
	AuthorImage     string             `bson:"authorImage,omitempty" json:"authorImage,omitempty"`
	FeaturedImage   string             `bson:"featuredImage,omitempty" json:"featuredImage,omitempty"`
	PublishedAt     time.Time          `bson:"publishedAt" json:"publishedAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
	Tags            []string           `bson:"tags" json:"tags"`
	Category        string             `bson:"category" json:"category"`
	ReadTime        int                `bson:"readTime" json:"readTime"`
	MetaTitle       string             `bson:"metaTitle,omitempty" json:"metaTitle,omitempty"`
	MetaDescription string             `bson:"metaDescription,omitempty" json:"metaDescription,omitempty"`
	Status          string             `bson:"status" json:"status"`
}

// ContactSubmission is the contact form payload. Name and email are
// required; everything else is optional and stored as null when absent.
// The timestamp is assigned by the store at write time.
type ContactSubmission struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Company         string `json:"company"`
	ProjectName     string `json:"projectName"`
	ProjectBudget   string `json:"projectBudget"`
	ProjectTimeline string `json:"projectTimeline"`
	ProjectType     string `json:"projectType"`
	Message         string `json:"message"`
}

// Subscription status values. The subscribe path only ever writes active.
const (
	SubscriptionActive       = "active"
	SubscriptionUnsubscribed = "unsubscribed"
)

// NewsletterSubscription is the newsletter form payload. Email is stored
// lowercased; subscribedAt and status are assigned by the store.
type NewsletterSubscription struct {
	Email  string `json:"email"`
	Locale string `json:"locale"`
	Source string `json:"source"`
}
