package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"clinic-services/config"
	"clinic-services/internal/domain/entity"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"
)

var ErrIndexDisabled = errors.New("search index is not configured")

// DocumentIndexer writes documents into an Elasticsearch index keyed by id.
type DocumentIndexer struct {
	client *elasticsearch.Client
	index  string
	log    *logrus.Logger
}

// NewDocumentIndexer returns an indexer. With no addresses configured every
// write fails with ErrIndexDisabled, which callers treat like any index outage.
func NewDocumentIndexer(cfg config.ElasticConfig, log *logrus.Logger) (*DocumentIndexer, error) {
	if len(cfg.Addresses) == 0 {
		return &DocumentIndexer{index: cfg.Index, log: log}, nil
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client creation error: %w", err)
	}

	return &DocumentIndexer{client: es, index: cfg.Index, log: log}, nil
}

type indexedDocument struct {
	ID         int64  `json:"id"`
	Date       string `json:"date"`
	PatientID  int64  `json:"patientId"`
	HospitalID int64  `json:"hospitalId"`
	DoctorID   int64  `json:"doctorId"`
	Room       string `json:"room"`
	Data       string `json:"data"`
}

func (i *DocumentIndexer) IndexDocument(ctx context.Context, doc *entity.Document) error {
	if i == nil || i.client == nil {
		return ErrIndexDisabled
	}

	body, err := json.Marshal(indexedDocument{
		ID:         doc.ID,
		Date:       doc.Date.UTC().Format("2006-01-02T15:04:05Z07:00"),
		PatientID:  doc.PatientID,
		HospitalID: doc.HospitalID,
		DoctorID:   doc.DoctorID,
		Room:       doc.Room,
		Data:       doc.Data,
	})
	if err != nil {
		return fmt.Errorf("error encoding document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      i.index,
		DocumentID: strconv.FormatInt(doc.ID, 10),
		Body:       strings.NewReader(string(body)),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, i.client)
	if err != nil {
		return fmt.Errorf("elasticsearch indexing error: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(res.Body)

	if res.IsError() {
		var respBody map[string]any
		if err := json.NewDecoder(res.Body).Decode(&respBody); err == nil {
			i.log.WithFields(logrus.Fields{
				"document_id": doc.ID,
				"status":      res.Status(),
			}).Warnf("Elasticsearch rejected document: %v", respBody["error"])
		}
		return fmt.Errorf("elasticsearch indexing error: %s", res.Status())
	}

	return nil
}
