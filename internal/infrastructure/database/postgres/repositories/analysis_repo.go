package repositories

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/analysis"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/bidding"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/risk"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/logging"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

// AnalysisRepository persists analysis results. The composite payloads
// (property data, risk score, market data, bidding advice) live in JSONB
// columns; the status and error message are flat so that polling does not pay
// for deserialization.
type AnalysisRepository struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

var _ analysis.Repository = (*AnalysisRepository)(nil)

// NewAnalysisRepository builds an AnalysisRepository on the shared pool.
func NewAnalysisRepository(pool *pgxpool.Pool, log logging.Logger) *AnalysisRepository {
	return &AnalysisRepository{pool: pool, logger: log.Named("analysis_repo")}
}

func (r *AnalysisRepository) Create(ctx context.Context, result *analysis.Result) error {
	row, err := marshalResult(result)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO analysis_results
		        (id, session_id, status, property_data, strengths, weaknesses,
		         risk_score, market_data, bidding_advice, error_message,
		         created_at, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		result.ID, result.SessionID, result.Status, row.propertyData,
		row.strengths, row.weaknesses, row.riskScore, row.marketData,
		row.biddingAdvice, result.ErrorMessage, result.CreatedAt, result.CompletedAt)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "insert analysis result")
	}
	return nil
}

func (r *AnalysisRepository) Update(ctx context.Context, result *analysis.Result) error {
	row, err := marshalResult(result)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE analysis_results
		    SET status = $2, property_data = $3, strengths = $4, weaknesses = $5,
		        risk_score = $6, market_data = $7, bidding_advice = $8,
		        error_message = $9, completed_at = $10
		  WHERE id = $1`,
		result.ID, result.Status, row.propertyData, row.strengths, row.weaknesses,
		row.riskScore, row.marketData, row.biddingAdvice, result.ErrorMessage,
		result.CompletedAt)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "update analysis result")
	}
	if tag.RowsAffected() == 0 {
		return errors.Newf(errors.CodeAnalysisNotFound, "analysis %s not found", result.ID)
	}
	return nil
}

func (r *AnalysisRepository) GetBySession(ctx context.Context, sessionID common.ID) (*analysis.Result, error) {
	var (
		result        analysis.Result
		propertyData  []byte
		strengths     []byte
		weaknesses    []byte
		riskScore     []byte
		marketData    []byte
		biddingAdvice []byte
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, session_id, status, property_data, strengths, weaknesses,
		        risk_score, market_data, bidding_advice, error_message,
		        created_at, completed_at
		   FROM analysis_results
		  WHERE session_id = $1`, sessionID).
		Scan(&result.ID, &result.SessionID, &result.Status, &propertyData,
			&strengths, &weaknesses, &riskScore, &marketData, &biddingAdvice,
			&result.ErrorMessage, &result.CreatedAt, &result.CompletedAt)
	if err == pgx.ErrNoRows {
		return nil, errors.Newf(errors.CodeAnalysisNotFound, "no analysis for session %s", sessionID)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "select analysis result")
	}

	if err := unmarshalInto(propertyData, &result.PropertyData); err != nil {
		return nil, err
	}
	if err := unmarshalInto(strengths, &result.Strengths); err != nil {
		return nil, err
	}
	if err := unmarshalInto(weaknesses, &result.Weaknesses); err != nil {
		return nil, err
	}
	if len(riskScore) > 0 {
		var score risk.Score
		if err := json.Unmarshal(riskScore, &score); err != nil {
			return nil, errors.Wrap(err, errors.CodeSerialization, "decode risk score")
		}
		result.RiskScore = &score
	}
	if err := unmarshalInto(marketData, &result.MarketData); err != nil {
		return nil, err
	}
	if len(biddingAdvice) > 0 {
		var advice bidding.AdviceSet
		if err := json.Unmarshal(biddingAdvice, &advice); err != nil {
			return nil, errors.Wrap(err, errors.CodeSerialization, "decode bidding advice")
		}
		if len(advice) > 0 {
			result.BiddingAdvice = advice
		}
	}
	return &result, nil
}

func (r *AnalysisRepository) DeleteBySession(ctx context.Context, sessionID common.ID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM analysis_results WHERE session_id = $1`, sessionID)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "delete analysis result")
	}
	return nil
}

// jsonRow carries the marshalled JSONB column values. A nil slice maps to SQL
// NULL.
type jsonRow struct {
	propertyData  []byte
	strengths     []byte
	weaknesses    []byte
	riskScore     []byte
	marketData    []byte
	biddingAdvice []byte
}

func marshalResult(result *analysis.Result) (*jsonRow, error) {
	row := &jsonRow{}
	var err error
	if row.propertyData, err = marshalOrNil(result.PropertyData, len(result.PropertyData) > 0); err != nil {
		return nil, err
	}
	if row.strengths, err = marshalSlice(result.Strengths); err != nil {
		return nil, err
	}
	if row.weaknesses, err = marshalSlice(result.Weaknesses); err != nil {
		return nil, err
	}
	if row.riskScore, err = marshalOrNil(result.RiskScore, result.RiskScore != nil); err != nil {
		return nil, err
	}
	if row.marketData, err = marshalOrNil(result.MarketData, len(result.MarketData) > 0); err != nil {
		return nil, err
	}
	if row.biddingAdvice, err = marshalOrNil(result.BiddingAdvice, len(result.BiddingAdvice) > 0); err != nil {
		return nil, err
	}
	return row, nil
}

func marshalOrNil(v interface{}, present bool) ([]byte, error) {
	if !present {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSerialization, "encode analysis payload")
	}
	return data, nil
}

func marshalSlice(v []string) ([]byte, error) {
	if v == nil {
		v = []string{}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSerialization, "encode analysis payload")
	}
	return data, nil
}

func unmarshalInto(data []byte, dest interface{}) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return errors.Wrap(err, errors.CodeSerialization, "decode analysis payload")
	}
	return nil
}
