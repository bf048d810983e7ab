package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/prubianes/guit-app-api/internal/errors"
	"github.com/prubianes/guit-app-api/internal/models"
	"github.com/prubianes/guit-app-api/internal/pagination"
	"github.com/prubianes/guit-app-api/internal/services"
)

// --- mock transaction service ---

type mockTransactionService struct {
	createTransactionFn   func(userID uint, input services.TransactionInput) (*models.Transaction, error)
	getUserTransactionsFn func(userID uint, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	getTransactionByIDFn  func(userID, transactionID uint) (*models.Transaction, error)
	updateTransactionFn   func(userID, transactionID uint, input services.TransactionInput) (*models.Transaction, error)
	deleteTransactionFn   func(userID, transactionID uint) (*models.Transaction, error)
	calls                 int
}

func (m *mockTransactionService) CreateTransaction(_ context.Context, userID uint, input services.TransactionInput) (*models.Transaction, error) {
	m.calls++
	if m.createTransactionFn != nil {
		return m.createTransactionFn(userID, input)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) GetUserTransactions(_ context.Context, userID uint, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	m.calls++
	if m.getUserTransactionsFn != nil {
		return m.getUserTransactionsFn(userID, page, filter)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockTransactionService) GetTransactionByID(_ context.Context, userID, transactionID uint) (*models.Transaction, error) {
	m.calls++
	if m.getTransactionByIDFn != nil {
		return m.getTransactionByIDFn(userID, transactionID)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) UpdateTransaction(_ context.Context, userID, transactionID uint, input services.TransactionInput) (*models.Transaction, error) {
	m.calls++
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(userID, transactionID, input)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) DeleteTransaction(_ context.Context, userID, transactionID uint) (*models.Transaction, error) {
	m.calls++
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(userID, transactionID)
	}
	return &models.Transaction{}, nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	g := r.Group("/user/:id/transactions")
	g.POST("", handler.CreateTransaction)
	g.GET("", handler.GetUserTransactions)
	g.GET("/:transactionId", handler.GetTransactionByID)
	g.PUT("/:transactionId", handler.UpdateTransaction)
	g.DELETE("/:transactionId", handler.DeleteTransaction)
	return r
}

func echoTransaction(userID uint, input services.TransactionInput) (*models.Transaction, error) {
	return &models.Transaction{
		Base:        models.Base{ID: 1},
		UserID:      userID,
		AccountID:   input.AccountID,
		CategoryID:  input.CategoryID,
		Amount:      input.Amount,
		Type:        input.Type,
		Date:        derefTime(input.Date),
		Description: derefString(input.Description),
	}, nil
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var got services.TransactionInput
		txnSvc := &mockTransactionService{
			createTransactionFn: func(userID uint, input services.TransactionInput) (*models.Transaction, error) {
				got = input
				return echoTransaction(userID, input)
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txnSvc))

		rec := doRequest(r, "POST", "/user/13/transactions",
			`{"accountId":26,"categoryId":2,"amount":50,"type":"income","date":"2025-03-12T10:00:00Z","description":"salary"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["userId"] != float64(13) || result["accountId"] != float64(26) || result["amount"] != float64(50) {
			t.Errorf("unexpected transaction %v", result)
		}
		if got.Date == nil || !got.Date.Equal(time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected date %v", got.Date)
		}
		if got.Description == nil || *got.Description != "salary" {
			t.Errorf("unexpected description %v", got.Description)
		}
	})

	t.Run("accepts amount as a numeric string", func(t *testing.T) {
		var got decimal.Decimal
		txnSvc := &mockTransactionService{
			createTransactionFn: func(userID uint, input services.TransactionInput) (*models.Transaction, error) {
				got = input.Amount
				return echoTransaction(userID, input)
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txnSvc))

		rec := doRequest(r, "POST", "/user/13/transactions",
			`{"accountId":26,"categoryId":2,"amount":"0.10","type":"expense"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !got.Equal(decimal.RequireFromString("0.1")) {
			t.Errorf("expected 0.1, got %s", got)
		}
	})

	t.Run("leaves date and description unset when omitted", func(t *testing.T) {
		var got services.TransactionInput
		txnSvc := &mockTransactionService{
			createTransactionFn: func(userID uint, input services.TransactionInput) (*models.Transaction, error) {
				got = input
				return echoTransaction(userID, input)
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txnSvc))

		rec := doRequest(r, "POST", "/user/13/transactions", `{"accountId":26,"categoryId":2,"amount":1,"type":"expense"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		if got.Date != nil || got.Description != nil {
			t.Errorf("expected the engine to pick date and description, got %v %v", got.Date, got.Description)
		}
	})

	rejected := []struct {
		name string
		path string
		body string
		code string
	}{
		{"invalid user ID", "/user/abc/transactions", `{"accountId":26,"categoryId":2,"amount":1,"type":"expense"}`, "INVALID_ID"},
		{"malformed body", "/user/13/transactions", `{"accountId":`, "INVALID_REQUEST_BODY"},
		{"array body", "/user/13/transactions", `[1,2]`, "INVALID_REQUEST_BODY"},
		{"missing account", "/user/13/transactions", `{"categoryId":2,"amount":1,"type":"expense"}`, "INVALID_TRANSACTION_DATA"},
		{"missing category", "/user/13/transactions", `{"accountId":26,"amount":1,"type":"expense"}`, "INVALID_TRANSACTION_DATA"},
		{"unknown type", "/user/13/transactions", `{"accountId":26,"categoryId":2,"amount":1,"type":"transfer"}`, "INVALID_TRANSACTION_DATA"},
		{"negative amount", "/user/13/transactions", `{"accountId":26,"categoryId":2,"amount":-5,"type":"expense"}`, "INVALID_TRANSACTION_DATA"},
		{"missing amount", "/user/13/transactions", `{"accountId":26,"categoryId":2,"type":"expense"}`, "INVALID_TRANSACTION_DATA"},
		{"non numeric amount", "/user/13/transactions", `{"accountId":26,"categoryId":2,"amount":"lots","type":"expense"}`, "INVALID_TRANSACTION_DATA"},
		{"account as string", "/user/13/transactions", `{"accountId":"26","categoryId":2,"amount":1,"type":"expense"}`, "INVALID_TRANSACTION_DATA"},
		{"bad date", "/user/13/transactions", `{"accountId":26,"categoryId":2,"amount":1,"type":"expense","date":"yesterday"}`, "INVALID_TRANSACTION_DATA"},
	}
	for _, tt := range rejected {
		t.Run("returns 400 on "+tt.name, func(t *testing.T) {
			txnSvc := &mockTransactionService{}
			r := setupTransactionRouter(NewTransactionHandler(txnSvc))

			rec := doRequest(r, "POST", tt.path, tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			assertErrorCode(t, parseJSON(t, rec), tt.code)
			if txnSvc.calls != 0 {
				t.Errorf("expected no service call, got %d", txnSvc.calls)
			}
		})
	}

	t.Run("returns 404 on unknown account", func(t *testing.T) {
		txnSvc := &mockTransactionService{
			createTransactionFn: func(_ uint, _ services.TransactionInput) (*models.Transaction, error) {
				return nil, apperrors.ErrAccountNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txnSvc))

		rec := doRequest(r, "POST", "/user/13/transactions", `{"accountId":99,"categoryId":2,"amount":1,"type":"expense"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ACCOUNT_NOT_FOUND")
	})

	t.Run("returns 500 on persistence failure", func(t *testing.T) {
		txnSvc := &mockTransactionService{
			createTransactionFn: func(_ uint, _ services.TransactionInput) (*models.Transaction, error) {
				return nil, apperrors.ErrCreation
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txnSvc))

		rec := doRequest(r, "POST", "/user/13/transactions", `{"accountId":26,"categoryId":2,"amount":1,"type":"expense"}`)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CREATION_ERROR")
	})
}

func TestTransactionHandler_GetUserTransactions(t *testing.T) {
	t.Run("parses filters", func(t *testing.T) {
		var got services.TransactionFilter
		txnSvc := &mockTransactionService{
			getUserTransactionsFn: func(_ uint, _ pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
				got = filter
				resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
				return &resp, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txnSvc))

		rec := doRequest(r, "GET", "/user/13/transactions?accountId=26&categoryId=2&type=expense&fromDate=2025-03-01&toDate=2025-03-31", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.AccountID == nil || *got.AccountID != 26 || got.CategoryID == nil || *got.CategoryID != 2 {
			t.Errorf("unexpected id filters %+v", got)
		}
		if got.Type == nil || *got.Type != models.TransactionTypeExpense {
			t.Errorf("unexpected type filter %v", got.Type)
		}
		if !got.FromDate.Equal(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected fromDate %s", got.FromDate)
		}
		wantTo := time.Date(2025, time.March, 31, 23, 59, 59, 999999999, time.UTC)
		if !got.ToDate.Equal(wantTo) {
			t.Errorf("expected toDate %s, got %s", wantTo, got.ToDate)
		}
	})

	t.Run("returns 400 on bad filter", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		for _, query := range []string{"accountId=x", "categoryId=0", "type=transfer", "fromDate=soon", "toDate=31/03/2025"} {
			rec := doRequest(r, "GET", "/user/13/transactions?"+query, "")
			if rec.Code != http.StatusBadRequest {
				t.Errorf("%s: expected 400, got %d", query, rec.Code)
				continue
			}
			assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
		}
	})

	t.Run("returns empty page", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "GET", "/user/13/transactions", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if data, ok := parseJSON(t, rec)["data"].([]interface{}); !ok || len(data) != 0 {
			t.Errorf("expected empty data array, got %s", rec.Body.String())
		}
	})
}

func TestTransactionHandler_GetTransactionByID(t *testing.T) {
	t.Run("returns 400 on invalid ID", func(t *testing.T) {
		txnSvc := &mockTransactionService{}
		r := setupTransactionRouter(NewTransactionHandler(txnSvc))

		rec := doRequest(r, "GET", "/user/13/transactions/1.5", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "INVALID_ID")
		if msg := result["error"].(map[string]interface{})["message"]; msg != "Invalid transaction ID" {
			t.Errorf("unexpected message %v", msg)
		}
		if txnSvc.calls != 0 {
			t.Error("expected no service call")
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		txnSvc := &mockTransactionService{
			getTransactionByIDFn: func(_, _ uint) (*models.Transaction, error) {
				return nil, apperrors.ErrTransactionNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txnSvc))

		rec := doRequest(r, "GET", "/user/13/transactions/7", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TRANSACTION_NOT_FOUND")
	})
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var gotID uint
		txnSvc := &mockTransactionService{
			updateTransactionFn: func(userID, transactionID uint, input services.TransactionInput) (*models.Transaction, error) {
				gotID = transactionID
				return echoTransaction(userID, input)
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txnSvc))

		rec := doRequest(r, "PUT", "/user/13/transactions/7", `{"accountId":26,"categoryId":2,"amount":100,"type":"income"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotID != 7 {
			t.Errorf("expected transaction 7, got %d", gotID)
		}
	})

	t.Run("passes omitted date and description as unset", func(t *testing.T) {
		var got services.TransactionInput
		txnSvc := &mockTransactionService{
			updateTransactionFn: func(userID, transactionID uint, input services.TransactionInput) (*models.Transaction, error) {
				got = input
				return echoTransaction(userID, input)
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txnSvc))

		rec := doRequest(r, "PUT", "/user/13/transactions/7", `{"accountId":26,"categoryId":2,"amount":35,"type":"expense"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Date != nil || got.Description != nil {
			t.Errorf("expected unset date and description, got %v %v", got.Date, got.Description)
		}
	})

	t.Run("returns 400 before calling the engine", func(t *testing.T) {
		txnSvc := &mockTransactionService{}
		r := setupTransactionRouter(NewTransactionHandler(txnSvc))

		rec := doRequest(r, "PUT", "/user/13/transactions/7", `{"accountId":26,"categoryId":2,"amount":100,"type":"gift"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_TRANSACTION_DATA")
		if txnSvc.calls != 0 {
			t.Error("expected no service call")
		}
	})

	t.Run("returns 400 on invalid transaction ID", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "PUT", "/user/13/transactions/zero", `{"accountId":26,"categoryId":2,"amount":100,"type":"income"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_ID")
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("returns deleted snapshot", func(t *testing.T) {
		txnSvc := &mockTransactionService{
			deleteTransactionFn: func(userID, transactionID uint) (*models.Transaction, error) {
				return &models.Transaction{
					Base:   models.Base{ID: transactionID},
					UserID: userID,
					Amount: decimal.NewFromInt(50),
					Type:   models.TransactionTypeExpense,
				}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txnSvc))

		rec := doRequest(r, "DELETE", "/user/13/transactions/7", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["id"] != float64(7) || result["amount"] != float64(50) {
			t.Errorf("unexpected snapshot %v", result)
		}
	})

	t.Run("returns 400 on corrupt stored type", func(t *testing.T) {
		txnSvc := &mockTransactionService{
			deleteTransactionFn: func(_, _ uint) (*models.Transaction, error) {
				return nil, apperrors.ErrInvalidTransactionData
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txnSvc))

		rec := doRequest(r, "DELETE", "/user/13/transactions/7", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_TRANSACTION_DATA")
	})
}
