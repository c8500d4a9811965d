package dcapi

// In this file: segment and profile reads built on the Query API.

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Segment types accepted by Segments.
const (
	SegmentAll      = "all"
	SegmentActive   = "active"
	SegmentArchived = "archived"
)

// defProfileFields are the profile fields returned by Profile when the
// caller does not name any.
var defProfileFields = []string{
	"Id", "FirstName__c", "LastName__c", "Email__c", "Phone__c",
	"TotalPurchases__c", "LifetimeValue__c", "LastActivityDate__c",
}

// Segments fetches the segment definitions from the Segment__dlm data
// model object, optionally filtered by status.
func (cl *Client) Segments(ctx context.Context, segmentType string) (*QueryResult, error) {
	query := "SELECT Id, Name, Description, Status, MemberCount FROM Segment__dlm"
	switch segmentType {
	case SegmentAll, "":
	case SegmentActive:
		query += " WHERE Status = 'Active'"
	case SegmentArchived:
		query += " WHERE Status = 'Archived'"
	default:
		return nil, fmt.Errorf("unknown segment type %q", segmentType)
	}
	return cl.QueryV2(ctx, query)
}

// SegmentMembers returns up to limit active members of the segment.
func (cl *Client) SegmentMembers(ctx context.Context, segmentID string, limit int) (*QueryResult, error) {
	query := "SELECT ProfileId__c, UnifiedIndividualId__c, SegmentId__c, MembershipStatus__c" +
		" FROM SegmentMembership__dlm" +
		" WHERE SegmentId__c = '" + quoteSOQL(segmentID) + "'" +
		" AND MembershipStatus__c = 'Active'" +
		" LIMIT " + strconv.Itoa(limit)
	return cl.QueryV2(ctx, query)
}

// Profile fetches a single unified profile by id.  An empty fields slice
// selects the default enrichment field set.
func (cl *Client) Profile(ctx context.Context, profileID string, fields []string) (*QueryResult, error) {
	if len(fields) == 0 {
		fields = defProfileFields
	}
	query := "SELECT " + strings.Join(fields, ", ") +
		" FROM UnifiedIndividual__dlm" +
		" WHERE Id = '" + quoteSOQL(profileID) + "'"
	return cl.QueryV2(ctx, query)
}
