package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/banking_app/internal/apperrors"
	"github.com/SscSPs/banking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banking_app/internal/core/ports/services"
	"github.com/SscSPs/banking_app/internal/dto"
	"github.com/SscSPs/banking_app/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxIdentifierAttempts bounds how many generated IBANs CreateAccount tries before giving up.
const maxIdentifierAttempts = 5

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo        portsrepo.AccountRepositoryFacade
	txnRepo            portsrepo.TransactionRepositoryFacade
	txManager          portsrepo.TransactionManager
	publisher          portssvc.EventPublisher
	generateIdentifier func() (string, error)
	now                func() time.Time
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithEventPublisher announces committed top-ups and transfers through publisher.
func WithEventPublisher(publisher portssvc.EventPublisher) AccountServiceOption {
	return func(s *accountService) {
		s.publisher = publisher
	}
}

// WithIdentifierGenerator replaces domain.GenerateIBAN.
func WithIdentifierGenerator(generate func() (string, error)) AccountServiceOption {
	return func(s *accountService) {
		s.generateIdentifier = generate
	}
}

// WithClock replaces time.Now for transaction timestamps.
func WithClock(now func() time.Time) AccountServiceOption {
	return func(s *accountService) {
		s.now = now
	}
}

// NewAccountService creates the account service. Balance changes run inside txManager.
func NewAccountService(
	accountRepo portsrepo.AccountRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	txManager portsrepo.TransactionManager,
	options ...AccountServiceOption,
) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo:        accountRepo,
		txnRepo:            txnRepo,
		txManager:          txManager,
		generateIdentifier: domain.GenerateIBAN,
		now:                time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, ownerID string) (*domain.Account, error) {
	for attempt := 1; attempt <= maxIdentifierAttempts; attempt++ {
		iban, err := s.generateIdentifier()
		if err != nil {
			s.LogError(ctx, err, "Failed to generate account identifier")
			return nil, err
		}

		account := domain.NewAccount(iban, ownerID)
		rows, err := s.accountRepo.InsertIfAbsent(ctx, account)
		if err != nil {
			s.LogError(ctx, err, "Failed to save account", slog.String("iban", iban))
			return nil, storeFailure("failed to create account", err)
		}
		if rows > 0 {
			s.LogInfo(ctx, "Account created", slog.String("iban", iban), slog.String("owner_id", ownerID))
			return &account, nil
		}

		s.LogWarn(ctx, "Generated account identifier already taken", slog.String("iban", iban), slog.Int("attempt", attempt))
	}

	return nil, apperrors.NewAppError(apperrors.KindDuplicate,
		fmt.Sprintf("could not allocate a free account identifier after %d attempts", maxIdentifierAttempts), nil)
}

func (s *accountService) CheckAccountOwnership(ctx context.Context, iban string, ownerID string) (bool, error) {
	owned, err := s.accountRepo.ExistsForOwner(ctx, iban, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check account ownership", slog.String("iban", iban))
		return false, storeFailure("failed to check account ownership", err)
	}
	return owned, nil
}

func (s *accountService) GetAccountBalance(ctx context.Context, iban string, ownerID string) (decimal.Decimal, error) {
	owned, err := s.CheckAccountOwnership(ctx, iban, ownerID)
	if err != nil {
		return decimal.Zero, err
	}
	if !owned {
		return decimal.Zero, accountNotFound(iban)
	}

	balance, err := s.accountRepo.BalanceOf(ctx, iban)
	if err != nil {
		s.LogError(ctx, err, "Failed to read account balance", slog.String("iban", iban))
		return decimal.Zero, storeFailure("failed to read account balance", err)
	}
	return balance, nil
}

func (s *accountService) GetOwnerTotalBalance(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	total, err := s.accountRepo.TotalBalanceOf(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to read total balance", slog.String("owner_id", ownerID))
		return decimal.Zero, storeFailure("failed to read total balance", err)
	}
	return total, nil
}

func (s *accountService) ListAccounts(ctx context.Context, ownerID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByOwner(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("owner_id", ownerID))
		return nil, storeFailure("failed to list accounts", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// TopUp credits one of the owner's accounts and records a TopUp transaction.
// The balance read and write happen under a row lock so concurrent top-ups are not lost.
func (s *accountService) TopUp(ctx context.Context, ownerID string, req dto.TopUpRequest) (bool, error) {
	if !req.Sum.IsPositive() {
		return false, apperrors.NewValidationError("Top up amount must be greater than zero")
	}

	now := s.now().UTC()
	written := false

	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		owned, err := s.accountRepo.ExistsForOwner(txCtx, req.IBAN, ownerID)
		if err != nil {
			return storeFailure("failed to check account ownership", err)
		}
		if !owned {
			return accountNotFound(req.IBAN)
		}

		locked, err := s.accountRepo.FindAccountsForUpdate(txCtx, []string{req.IBAN})
		if err != nil {
			return storeFailure("failed to lock account", err)
		}
		account, ok := locked[req.IBAN]
		if !ok {
			return accountNotFound(req.IBAN)
		}

		account.Balance = account.Balance.Add(req.Sum)
		rows, err := s.accountRepo.Upsert(txCtx, account)
		if err != nil {
			return storeFailure("failed to update balance", err)
		}
		if rows == 0 {
			return nil
		}
		written = true

		if _, err := s.txnRepo.Append(txCtx, domain.Transaction{
			TransactionID: uuid.NewString(),
			IBAN:          req.IBAN,
			Type:          domain.TopUp,
			Amount:        req.Sum,
			Timestamp:     now,
			Description:   domain.TopUpDescription(req.Sum),
		}); err != nil {
			return storeFailure("failed to record top up", err)
		}
		return nil
	})
	if err != nil {
		s.logOperationFailure(ctx, err, "Top up failed", slog.String("iban", req.IBAN))
		return false, err
	}

	if written {
		s.LogInfo(ctx, "Account topped up", slog.String("iban", req.IBAN), slog.String("amount", req.Sum.String()))
		s.publish(ctx, domain.MoneyMovedEvent{
			EventType:    domain.EventAccountToppedUp,
			OwnerID:      ownerID,
			ReceiverIBAN: req.IBAN,
			Amount:       req.Sum,
			OccurredAt:   now,
		})
	}
	return written, nil
}

// SendMoney debits the sender and credits the receiver in a single store transaction.
// Checks run in order: sender ownership, receiver existence, sender balance.
func (s *accountService) SendMoney(ctx context.Context, ownerID string, req dto.SendMoneyRequest) (bool, error) {
	if !req.Sum.IsPositive() {
		return false, apperrors.NewValidationError("Send amount must be greater than zero")
	}
	if req.SenderIBAN == req.ReceiverIBAN {
		return false, apperrors.NewValidationError("Sender and receiver accounts must differ")
	}

	now := s.now().UTC()
	received := false

	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		owned, err := s.accountRepo.ExistsForOwner(txCtx, req.SenderIBAN, ownerID)
		if err != nil {
			return storeFailure("failed to check sender account", err)
		}
		if !owned {
			return apperrors.NewAppError(apperrors.KindSenderAccountNotFound,
				fmt.Sprintf("Account %s not found for your user", req.SenderIBAN), nil)
		}

		exists, err := s.accountRepo.ExistsByIdentifier(txCtx, req.ReceiverIBAN)
		if err != nil {
			return storeFailure("failed to check receiver account", err)
		}
		if !exists {
			return receiverNotFound(req.ReceiverIBAN)
		}

		locked, err := s.accountRepo.FindAccountsForUpdate(txCtx, []string{req.SenderIBAN, req.ReceiverIBAN})
		if err != nil {
			return storeFailure("failed to lock accounts", err)
		}
		sender, ok := locked[req.SenderIBAN]
		if !ok {
			return apperrors.NewAppError(apperrors.KindSenderAccountNotFound,
				fmt.Sprintf("Account %s not found for your user", req.SenderIBAN), nil)
		}
		receiver, ok := locked[req.ReceiverIBAN]
		if !ok {
			return receiverNotFound(req.ReceiverIBAN)
		}

		if sender.Balance.LessThan(req.Sum) {
			return apperrors.NewAppError(apperrors.KindInsufficientBalance,
				fmt.Sprintf("Insufficient balance. Desired send amount: %s. Current balance: %s",
					domain.FormatAmount(req.Sum), domain.FormatAmount(sender.Balance)), nil)
		}

		sender.Balance = sender.Balance.Sub(req.Sum)
		rows, err := s.accountRepo.Upsert(txCtx, sender)
		if err != nil {
			return storeFailure("failed to debit sender", err)
		}
		if rows > 0 {
			if _, err := s.txnRepo.Append(txCtx, domain.Transaction{
				TransactionID: uuid.NewString(),
				IBAN:          req.SenderIBAN,
				Type:          domain.Debit,
				Amount:        req.Sum.Neg(),
				Timestamp:     now,
				Description:   domain.TransferToDescription(req.ReceiverIBAN),
			}); err != nil {
				return storeFailure("failed to record debit", err)
			}
		}

		receiver.Balance = receiver.Balance.Add(req.Sum)
		rows, err = s.accountRepo.Upsert(txCtx, receiver)
		if err != nil {
			return storeFailure("failed to credit receiver", err)
		}
		if rows == 0 {
			return nil
		}
		received = true

		if _, err := s.txnRepo.Append(txCtx, domain.Transaction{
			TransactionID: uuid.NewString(),
			IBAN:          req.ReceiverIBAN,
			Type:          domain.Credit,
			Amount:        req.Sum,
			Timestamp:     now,
			Description:   domain.TransferFromDescription(req.SenderIBAN),
		}); err != nil {
			return storeFailure("failed to record credit", err)
		}
		return nil
	})
	if err != nil {
		s.logOperationFailure(ctx, err, "Send money failed",
			slog.String("sender_iban", req.SenderIBAN),
			slog.String("receiver_iban", req.ReceiverIBAN))
		return false, err
	}

	if received {
		s.LogInfo(ctx, "Money sent",
			slog.String("sender_iban", req.SenderIBAN),
			slog.String("receiver_iban", req.ReceiverIBAN),
			slog.String("amount", req.Sum.String()))
		s.publish(ctx, domain.MoneyMovedEvent{
			EventType:    domain.EventTransferCompleted,
			OwnerID:      ownerID,
			SenderIBAN:   req.SenderIBAN,
			ReceiverIBAN: req.ReceiverIBAN,
			Amount:       req.Sum,
			OccurredAt:   now,
		})
	}
	return received, nil
}

func (s *accountService) GetAllTransactions(ctx context.Context, ownerID string) ([]dto.TransactionResponse, error) {
	txns, err := s.txnRepo.ListForOwner(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("owner_id", ownerID))
		return nil, storeFailure("failed to list transactions", err)
	}
	return dto.ToTransactionResponses(txns), nil
}

func (s *accountService) ListTransactions(ctx context.Context, ownerID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	var cursor *domain.TransactionCursor
	if params.NextToken != "" {
		ts, id, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.KindValidation, "Invalid nextToken", err)
		}
		cursor = &domain.TransactionCursor{Timestamp: ts, TransactionID: id}
	}

	// One extra row tells us whether another page exists.
	txns, err := s.txnRepo.ListForOwnerPage(ctx, ownerID, cursor, limit+1)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions page", slog.String("owner_id", ownerID))
		return nil, storeFailure("failed to list transactions", err)
	}

	resp := &dto.ListTransactionsResponse{}
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		resp.NextToken = pagination.EncodeToken(last.Timestamp, last.TransactionID)
	}
	resp.Transactions = dto.ToTransactionResponses(txns)
	return resp, nil
}

func (s *accountService) publish(ctx context.Context, event domain.MoneyMovedEvent) {
	if s.publisher == nil {
		return
	}
	event.EventID = uuid.NewString()
	if err := s.publisher.PublishMoneyMoved(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish money moved event",
			slog.String("event_type", string(event.EventType)),
			slog.String("event_id", event.EventID))
	}
}

// logOperationFailure logs store failures as errors and expected business outcomes at debug level.
func (s *accountService) logOperationFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if errors.Is(err, apperrors.ErrStoreFailure) || apperrors.KindOf(err) == "" {
		s.LogError(ctx, err, msg, keyvals...)
		return
	}
	s.LogDebug(ctx, msg, append(keyvals, slog.String("reason", err.Error()))...)
}

func accountNotFound(iban string) error {
	return apperrors.NewAppError(apperrors.KindAccountNotFound,
		fmt.Sprintf("Account `%s` not found for your user", iban), nil)
}

func receiverNotFound(iban string) error {
	return apperrors.NewAppError(apperrors.KindReceiverAccountNotFound,
		fmt.Sprintf("Receiver account %s not found", iban), nil)
}

// storeFailure wraps err as a store failure unless it already carries a kind or a legacy sentinel.
func storeFailure(msg string, err error) error {
	if apperrors.KindOf(err) != "" ||
		errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrDuplicate) {
		return err
	}
	return apperrors.NewStoreFailure(msg, err)
}
