//go:build integration

package pgsql_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/banking_app/internal/adapters/events"
	"github.com/SscSPs/banking_app/internal/apperrors"
	"github.com/SscSPs/banking_app/internal/core/domain"
	"github.com/SscSPs/banking_app/internal/core/services"
	"github.com/SscSPs/banking_app/internal/dto"
	"github.com/SscSPs/banking_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/banking_app/pkg/database"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/sync/errgroup"
)

const migrationsPath = "file://../../../../migrations"

func startPostgresContainer(t *testing.T, ctx context.Context) string {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:15",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())
}

func startRabbitMQContainer(t *testing.T, ctx context.Context) string {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "rabbitmq:3-management",
		ExposedPorts: []string{"5672/tcp"},
		Env: map[string]string{
			"RABBITMQ_DEFAULT_USER": "guest",
			"RABBITMQ_DEFAULT_PASS": "guest",
		},
		WaitingFor: wait.ForLog("Server startup complete"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start rabbitmq container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate rabbitmq container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5672")
	require.NoError(t, err)

	return fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port())
}

// consumeEvents binds an exclusive queue to every event on exchange.
func consumeEvents(t *testing.T, rabbitURL, exchange string) <-chan domain.MoneyMovedEvent {
	t.Helper()
	conn, err := amqp.Dial(rabbitURL)
	require.NoError(t, err)
	ch, err := conn.Channel()
	require.NoError(t, err)
	t.Cleanup(func() {
		ch.Close()
		conn.Close()
	})

	require.NoError(t, ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil))
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(q.Name, "#", exchange, false, nil))

	msgs, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	require.NoError(t, err)

	out := make(chan domain.MoneyMovedEvent, 16)
	go func() {
		for msg := range msgs {
			var event domain.MoneyMovedEvent
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				t.Logf("failed to decode event: %v", err)
				continue
			}
			out <- event
		}
	}()
	return out
}

func TestBankingFlowAgainstPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	dbURL := startPostgresContainer(t, ctx)
	require.NoError(t, database.RunMigrations(dbURL, migrationsPath, slog.Default()))
	// A second run must be a no-op.
	require.NoError(t, database.RunMigrations(dbURL, migrationsPath, slog.Default()))

	pool, err := database.NewPgxPool(ctx, dbURL, true)
	require.NoError(t, err)
	t.Cleanup(func() { database.ClosePgxPool(pool) })

	rabbitURL := startRabbitMQContainer(t, ctx)
	const exchange = "bank.operations"
	publisher, err := events.NewRabbitMQPublisher(rabbitURL, exchange)
	require.NoError(t, err)
	t.Cleanup(func() { publisher.Close() })
	received := consumeEvents(t, rabbitURL, exchange)

	repos := pgsql.NewRepositoryProvider(pool)
	svc := services.NewAccountService(repos.AccountRepo, repos.TransactionRepo, repos.TxManager,
		services.WithEventPublisher(publisher))

	alice := domain.User{UserID: uuid.NewString(), Email: "alice@bank.lt", LocalID: "uid-alice", DateCreated: time.Now().UTC()}
	bob := domain.User{UserID: uuid.NewString(), Email: "bob@bank.lt", LocalID: "uid-bob", DateCreated: time.Now().UTC()}
	require.NoError(t, repos.UserRepo.SaveUser(ctx, alice))
	require.NoError(t, repos.UserRepo.SaveUser(ctx, bob))
	assert.ErrorIs(t, repos.UserRepo.SaveUser(ctx, alice), apperrors.ErrDuplicate)

	a1, err := svc.CreateAccount(ctx, alice.UserID)
	require.NoError(t, err)
	a2, err := svc.CreateAccount(ctx, bob.UserID)
	require.NoError(t, err)

	_, err = svc.TopUp(ctx, alice.UserID, dto.TopUpRequest{IBAN: a1.IBAN, Sum: decimal.NewFromInt(100)})
	require.NoError(t, err)
	_, err = svc.TopUp(ctx, alice.UserID, dto.TopUpRequest{IBAN: a1.IBAN, Sum: decimal.NewFromInt(50)})
	require.NoError(t, err)

	ok, err := svc.SendMoney(ctx, alice.UserID, dto.SendMoneyRequest{SenderIBAN: a1.IBAN, ReceiverIBAN: a2.IBAN, Sum: decimal.NewFromInt(30)})
	require.NoError(t, err)
	assert.True(t, ok)

	bal1, err := svc.GetAccountBalance(ctx, a1.IBAN, alice.UserID)
	require.NoError(t, err)
	bal2, err := svc.GetAccountBalance(ctx, a2.IBAN, bob.UserID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(120).Equal(bal1), "got %s", bal1)
	assert.True(t, decimal.NewFromInt(30).Equal(bal2), "got %s", bal2)

	_, err = svc.SendMoney(ctx, bob.UserID, dto.SendMoneyRequest{SenderIBAN: a2.IBAN, ReceiverIBAN: a1.IBAN, Sum: decimal.NewFromInt(50)})
	require.ErrorIs(t, err, apperrors.ErrInsufficientBalance)
	assert.Equal(t, "Insufficient balance. Desired send amount: 50.00. Current balance: 30.00", err.Error())

	history, err := svc.GetAllTransactions(ctx, alice.UserID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, domain.Debit, history[0].Type)

	// Two top-ups and one transfer were committed; the failed send publishes nothing.
	seen := map[domain.MoneyMovedEventType]int{}
	timeout := time.After(10 * time.Second)
	for len(seen) < 2 || seen[domain.EventAccountToppedUp] < 2 {
		select {
		case e := <-received:
			seen[e.EventType]++
		case <-timeout:
			t.Fatalf("timed out waiting for events, got %v", seen)
		}
	}
	assert.Equal(t, 1, seen[domain.EventTransferCompleted])
}

func TestConcurrentTopUpsAgainstPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	dbURL := startPostgresContainer(t, ctx)
	require.NoError(t, database.RunMigrations(dbURL, migrationsPath, slog.Default()))
	pool, err := database.NewPgxPool(ctx, dbURL, true)
	require.NoError(t, err)
	t.Cleanup(func() { database.ClosePgxPool(pool) })

	repos := pgsql.NewRepositoryProvider(pool)
	svc := services.NewAccountService(repos.AccountRepo, repos.TransactionRepo, repos.TxManager)

	owner := domain.User{UserID: uuid.NewString(), Email: "carol@bank.lt", LocalID: "uid-carol", DateCreated: time.Now().UTC()}
	require.NoError(t, repos.UserRepo.SaveUser(ctx, owner))
	account, err := svc.CreateAccount(ctx, owner.UserID)
	require.NoError(t, err)

	const workers = 20
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			_, err := svc.TopUp(ctx, owner.UserID, dto.TopUpRequest{IBAN: account.IBAN, Sum: decimal.RequireFromString("1.25")})
			return err
		})
	}
	require.NoError(t, g.Wait())

	balance, err := svc.GetAccountBalance(ctx, account.IBAN, owner.UserID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("25").Equal(balance), "got %s", balance)

	page, err := svc.ListTransactions(ctx, owner.UserID, dto.ListTransactionsParams{Limit: 15})
	require.NoError(t, err)
	assert.Len(t, page.Transactions, 15)
	require.NotEmpty(t, page.NextToken)

	rest, err := svc.ListTransactions(ctx, owner.UserID, dto.ListTransactionsParams{Limit: 15, NextToken: page.NextToken})
	require.NoError(t, err)
	assert.Len(t, rest.Transactions, 5)
	assert.Empty(t, rest.NextToken)
}
