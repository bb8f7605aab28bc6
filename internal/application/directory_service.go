package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/carehome-admin/internal/domain/entity"
)

// DirectoryEntry is the searchable projection of a resident.
type DirectoryEntry struct {
	ID        string           `json:"id"`
	FullName  string           `json:"full_name"`
	Email     string           `json:"email,omitempty"`
	Phone     string           `json:"phone,omitempty"`
	CareLevel entity.CareLevel `json:"care_level"`
	RoomName  string           `json:"room_name,omitempty"`
	UpdatedAt string           `json:"updated_at"`
}

// DirectoryService keeps the resident directory index in step with resident
// writes and serves full-text lookups. A nil client disables it.
type DirectoryService struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewDirectoryService(es *elasticsearch.Client, index string, logger *logrus.Logger) *DirectoryService {
	return &DirectoryService{ES: es, Index: index, Logger: logger}
}

func (s *DirectoryService) enabled() bool {
	return s != nil && s.ES != nil && s.Index != ""
}

func (s *DirectoryService) IndexResident(ctx context.Context, r *entity.Resident) error {
	if !s.enabled() {
		return nil
	}
	doc := DirectoryEntry{
		ID:        r.ID,
		FullName:  r.FullName,
		Email:     r.Email,
		Phone:     r.Phone,
		CareLevel: r.CareLevel,
		RoomName:  r.RoomName,
		UpdatedAt: r.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: s.Index, DocumentID: r.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("resident_id", r.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		if s.Logger != nil {
			s.Logger.WithField("status", res.Status()).WithField("resident_id", r.ID).Warn("es index response error")
		}
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

func (s *DirectoryService) RemoveResident(ctx context.Context, id string) error {
	if !s.enabled() {
		return nil
	}
	req := esapi.DeleteRequest{Index: s.Index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("resident_id", id).Warn("es delete failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// Search runs a multi_match query over name, email and phone.
func (s *DirectoryService) Search(ctx context.Context, q string, size int) ([]DirectoryEntry, error) {
	if !s.enabled() || q == "" {
		return []DirectoryEntry{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"full_name^2", "email", "phone"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.Index), s.ES.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source DirectoryEntry `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]DirectoryEntry, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
