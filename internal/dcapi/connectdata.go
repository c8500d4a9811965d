package dcapi

// In this file: official Connect Data API segment reads, each with a
// Query API fallback for orgs where the Connect Data surface is not
// enabled.

import (
	"context"
	"errors"
	"net/url"
	"strconv"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ConnectSegments lists segments via the Connect Data API, optionally
// filtered by name and status.
func (cl *Client) ConnectSegments(ctx context.Context, name, status string) (map[string]any, error) {
	q := make(url.Values)
	if name != "" {
		q.Set("name", name)
	}
	if status != "" {
		q.Set("status", status)
	}
	var resp map[string]any
	err := cl.get(ctx, cl.connectDataPath()+"/segments", q, &resp)
	if err == nil {
		return resp, nil
	}

	query := "SELECT Id, Name, Description, Status, MemberCount FROM Segment__dlm"
	var conds []string
	if name != "" {
		conds = append(conds, "Name LIKE '%"+quoteSOQL(name)+"%'")
	}
	if status != "" {
		conds = append(conds, "Status = '"+quoteSOQL(status)+"'")
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " LIMIT 100"

	res, qerr := cl.QueryV2(ctx, query)
	if qerr != nil {
		return nil, err
	}
	return map[string]any{
		"segments": res.Rows(),
		"source":   "query-api-fallback",
	}, nil
}

// ConnectSegmentDetails returns the detail view of a single segment.
func (cl *Client) ConnectSegmentDetails(ctx context.Context, segmentID string) (map[string]any, error) {
	var resp map[string]any
	err := cl.get(ctx, cl.connectDataPath()+"/segments/"+url.PathEscape(segmentID), nil, &resp)
	if err == nil {
		return resp, nil
	}

	query := "SELECT Id, Name, Description, Status, MemberCount," +
		" CreatedDate, LastModifiedDate, SegmentType" +
		" FROM Segment__dlm WHERE Id = '" + quoteSOQL(segmentID) + "'"
	res, qerr := cl.QueryV2(ctx, query)
	if qerr != nil {
		return nil, err
	}
	rows := res.Rows()
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return map[string]any{
		"segment": rows[0],
		"source":  "query-api-fallback",
	}, nil
}

// ConnectSegmentMembers returns a page of segment members.
func (cl *Client) ConnectSegmentMembers(ctx context.Context, segmentID string, limit, offset int) (map[string]any, error) {
	q := url.Values{
		"limit":  []string{strconv.Itoa(limit)},
		"offset": []string{strconv.Itoa(offset)},
	}
	var resp map[string]any
	err := cl.get(ctx, cl.connectDataPath()+"/segments/"+url.PathEscape(segmentID)+"/members", q, &resp)
	if err == nil {
		return resp, nil
	}

	query := "SELECT ProfileId__c, UnifiedIndividualId__c, SegmentId__c," +
		" MembershipStatus__c, JoinDate__c" +
		" FROM SegmentMembership__dlm" +
		" WHERE SegmentId__c = '" + quoteSOQL(segmentID) + "'" +
		" AND MembershipStatus__c = 'Active'" +
		" LIMIT " + strconv.Itoa(limit)
	if offset > 0 {
		query += " OFFSET " + strconv.Itoa(offset)
	}
	res, qerr := cl.QueryV2(ctx, query)
	if qerr != nil {
		return nil, err
	}
	rows := res.Rows()
	return map[string]any{
		"members":    rows,
		"totalCount": len(rows),
		"limit":      limit,
		"offset":     offset,
		"source":     "query-api-fallback",
	}, nil
}

// SearchConnectSegments searches segments by name.
func (cl *Client) SearchConnectSegments(ctx context.Context, term string, exact bool) (map[string]any, error) {
	q := url.Values{
		"q":     []string{term},
		"exact": []string{strconv.FormatBool(exact)},
	}
	var resp map[string]any
	err := cl.get(ctx, cl.connectDataPath()+"/segments/search", q, &resp)
	if err == nil {
		return resp, nil
	}

	var query string
	if exact {
		query = "SELECT Id, Name, Description, Status, MemberCount FROM Segment__dlm WHERE Name = '" + quoteSOQL(term) + "'"
	} else {
		query = "SELECT Id, Name, Description, Status, MemberCount FROM Segment__dlm WHERE Name LIKE '%" + quoteSOQL(term) + "%'"
	}
	query += " LIMIT 50"

	res, qerr := cl.QueryV2(ctx, query)
	if qerr != nil {
		return nil, err
	}
	return map[string]any{
		"segments":   res.Rows(),
		"searchTerm": term,
		"exactMatch": exact,
		"source":     "query-api-fallback",
	}, nil
}
