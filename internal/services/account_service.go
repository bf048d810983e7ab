package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/prubianes/guit-app-api/internal/errors"
	"github.com/prubianes/guit-app-api/internal/models"
	"github.com/prubianes/guit-app-api/internal/pagination"
)

// accountService handles account-related business logic.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// CreateAccount creates an account for a user with its opening balance.
func (s *accountService) CreateAccount(ctx context.Context, userID uint, name string, accountType models.AccountType, openingBalance decimal.Decimal) (*models.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}
	if accountType == "" {
		accountType = models.AccountTypeCash
	}

	if err := ensureUserExists(ctx, s.db, userID); err != nil {
		return nil, err
	}

	account := &models.Account{
		UserID:  userID,
		Name:    name,
		Type:    accountType,
		Balance: openingBalance,
	}
	if err := s.db.WithContext(ctx).Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCreation, err)
	}
	return account, nil
}

// GetUserAccounts retrieves a paginated list of accounts for a user.
func (s *accountService) GetUserAccounts(ctx context.Context, userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error) {
	page.Defaults()

	base := s.db.WithContext(ctx).Model(&models.Account{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrRetrieval, err)
	}

	var accounts []models.Account
	if err := base.Scopes(pagination.Paginate(page)).Order("id ASC").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrRetrieval, err)
	}

	result := pagination.NewPageResponse(accounts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAccountByID retrieves an account by ID for a specific user
func (s *accountService) GetAccountByID(ctx context.Context, userID, accountID uint) (*models.Account, error) {
	var account models.Account
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrRetrieval, err)
	}
	return &account, nil
}

// UpdateAccount renames or retypes an account. The balance is left alone.
func (s *accountService) UpdateAccount(ctx context.Context, userID, accountID uint, name *string, accountType *models.AccountType) (*models.Account, error) {
	account, err := s.GetAccountByID(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name cannot be empty")
		}
		updates["name"] = trimmed
	}
	if accountType != nil && *accountType != "" {
		updates["type"] = *accountType
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(account).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrUpdate, err)
		}
	}
	return account, nil
}

// DeleteAccount removes an account together with its transactions.
func (s *accountService) DeleteAccount(ctx context.Context, userID, accountID uint) (*models.Account, error) {
	account, err := s.GetAccountByID(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", account.ID).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Account{}, account.ID).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDeletion, err)
	}
	return account, nil
}

// ensureUserExists maps a missing owner to USER_NOT_FOUND.
func ensureUserExists(ctx context.Context, db *gorm.DB, userID uint) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrRetrieval, err)
	}
	if count == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
