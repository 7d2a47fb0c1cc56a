package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"mintgate/internal/blobstore"
	"mintgate/internal/consent"
	"mintgate/internal/platform/middleware"
	"mintgate/pkg/domain"
	"mintgate/pkg/testutil"
)

type ConsentHandlerSuite struct {
	suite.Suite
	ctx    context.Context
	ledger *consent.Ledger
	router chi.Router
}

func TestConsentHandlerSuite(t *testing.T) {
	suite.Run(t, new(ConsentHandlerSuite))
}

func (s *ConsentHandlerSuite) SetupTest() {
	s.reset()
}

// SetupSubTest rebuilds the ledger for every s.Run subtest so records granted
// in one subtest cannot leak into the next.
func (s *ConsentHandlerSuite) SetupSubTest() {
	s.reset()
}

func (s *ConsentHandlerSuite) reset() {
	s.ctx = context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var err error
	s.ledger, err = consent.NewLedger(s.ctx, blobstore.NewInMemoryStore(), consent.WithLogger(logger))
	s.Require().NoError(err)

	s.router = chi.NewRouter()
	New(s.ledger, logger).Register(s.router)
}

func asSubject(req *http.Request, subject string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.ContextKeySubject, subject)
	return req.WithContext(ctx)
}

func (s *ConsentHandlerSuite) grant(subject string) consent.Record {
	record, err := s.ledger.Grant(s.ctx, subject,
		domain.ConsentTypeNFTMetadata,
		[]domain.ConsentPurpose{domain.ConsentPurposeCreation},
		[]domain.DataCategory{domain.DataCategoryHeartRate},
	)
	s.Require().NoError(err)
	return record
}

func (s *ConsentHandlerSuite) TestGrant() {
	s.Run("valid grant returns the new record", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/consent", GrantRequest{
			Type:           "nft_metadata_storage",
			Purposes:       []string{"content_creation", "asset_minting"},
			DataCategories: []string{"heart_rate", "hrv"},
		})
		rr := testutil.DoRequest(s.router, asSubject(req, "artist-1"))

		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		resp := testutil.UnmarshalResponse[RecordResponse](s.T(), rr)
		s.NotEmpty(resp.ID)
		s.Equal("nft_metadata_storage", resp.Type)
		s.True(resp.Granted)
		s.Equal([]string{"content_creation", "asset_minting"}, resp.Purposes)
		s.Require().NotNil(resp.ExpiresAt)
		s.True(resp.ExpiresAt.After(resp.GrantedAt))

		s.Len(s.ledger.List(s.ctx, "artist-1"), 1)
	})

	s.Run("unknown purpose is rejected", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/consent", GrantRequest{
			Type:     "nft_metadata_storage",
			Purposes: []string{"world_domination"},
		})
		rr := testutil.DoRequest(s.router, asSubject(req, "artist-1"))

		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		testutil.AssertErrorCode(s.T(), rr, "invalid_input")
	})

	s.Run("missing purposes are rejected", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/consent", GrantRequest{
			Type: "nft_metadata_storage",
		})
		rr := testutil.DoRequest(s.router, asSubject(req, "artist-1"))

		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		testutil.AssertErrorCode(s.T(), rr, "invalid_input")
	})

	s.Run("missing subject is unauthorized", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/consent", GrantRequest{
			Type:     "nft_metadata_storage",
			Purposes: []string{"content_creation"},
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
	})
}

func (s *ConsentHandlerSuite) TestRevoke() {
	s.Run("owner revokes their record", func() {
		record := s.grant("artist-1")

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/consent/revoke", RevokeRequest{ID: record.ID.String()})
		rr := testutil.DoRequest(s.router, asSubject(req, "artist-1"))

		testutil.AssertStatus(s.T(), rr, http.StatusNoContent)
		s.Empty(s.ledger.List(s.ctx, "artist-1"))
	})

	s.Run("another subject cannot revoke the record", func() {
		record := s.grant("artist-1")

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/consent/revoke", RevokeRequest{ID: record.ID.String()})
		rr := testutil.DoRequest(s.router, asSubject(req, "rival-2"))

		testutil.AssertStatus(s.T(), rr, http.StatusNoContent)
		s.Len(s.ledger.List(s.ctx, "artist-1"), 1, "record must survive a foreign revoke")
	})

	s.Run("malformed id is rejected", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/consent/revoke", RevokeRequest{ID: "not-a-uuid"})
		rr := testutil.DoRequest(s.router, asSubject(req, "artist-1"))

		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		testutil.AssertErrorCode(s.T(), rr, "invalid_input")
	})
}

func (s *ConsentHandlerSuite) TestList() {
	s.Run("lists only the caller's records", func() {
		s.grant("artist-1")
		s.grant("artist-1")
		s.grant("rival-2")

		req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/consent", nil)
		rr := testutil.DoRequest(s.router, asSubject(req, "artist-1"))

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[ListResponse](s.T(), rr)
		s.Len(resp.Records, 2)
	})

	s.Run("empty ledger yields an empty list", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/consent", nil)
		rr := testutil.DoRequest(s.router, asSubject(req, "artist-1"))

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[ListResponse](s.T(), rr)
		s.NotNil(resp.Records)
		s.Empty(resp.Records)
	})
}

func (s *ConsentHandlerSuite) TestIsValid() {
	s.Run("valid consent for the queried purpose", func() {
		s.grant("artist-1")

		req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/consent/valid?purpose=content_creation", nil)
		rr := testutil.DoRequest(s.router, asSubject(req, "artist-1"))

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[ValidityResponse](s.T(), rr)
		s.True(resp.Valid)
		s.Equal("content_creation", resp.Purpose)
	})

	s.Run("other purposes stay invalid", func() {
		s.grant("artist-1")

		req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/consent/valid?purpose=research", nil)
		rr := testutil.DoRequest(s.router, asSubject(req, "artist-1"))

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[ValidityResponse](s.T(), rr)
		s.False(resp.Valid)
	})

	s.Run("missing purpose parameter is rejected", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/consent/valid", nil)
		rr := testutil.DoRequest(s.router, asSubject(req, "artist-1"))

		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		testutil.AssertErrorCode(s.T(), rr, "invalid_input")
	})
}
