// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/transaction-report-api/infrastructure/database/postgres"
	"github.com/vfg2006/transaction-report-api/internal/domain"
	"github.com/vfg2006/transaction-report-api/pkg/utils"
)

const (
	transactionsTable = "transactions"
	maxPrealloc       = 64
)

var transactionColumns = []string{
	"id",
	"title",
	"price",
	"description",
	"category",
	"sold",
	"date_of_sale",
}

//go:generate mockgen -source=transaction.go -destination=mocks/transaction_mock.go -package=mocks
type TransactionRepository interface {
	// List devolve a página de vendas do mês que casam com a busca, na ordem de inserção
	List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error)
	GetStatistics(ctx context.Context, month string) (*domain.Statistics, error)
	CountByPriceBucket(ctx context.Context, month string, bucket domain.PriceBucket) (int64, error)
	CountByCategory(ctx context.Context, month string) ([]domain.CategoryCount, error)
	Count(ctx context.Context) (int64, error)
	// ReplaceAll apaga todas as vendas e insere o novo conjunto; IDs vazios são gerados aqui
	ReplaceAll(ctx context.Context, transactions []*domain.Transaction) (int, error)
}

type transactionRepository struct {
	conn postgres.Conn
}

func NewTransactionRepository(conn postgres.Conn) TransactionRepository {
	return &transactionRepository{
		conn: conn,
	}
}

func (r *transactionRepository) List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	query, args, err := listQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError("listar transações", err)
	}
	defer rows.Close()

	transactions := make([]*domain.Transaction, 0, min(filter.Limit(), maxPrealloc))
	for rows.Next() {
		tx := &domain.Transaction{}
		if err := rows.Scan(
			&tx.ID,
			&tx.Title,
			&tx.Price,
			&tx.Description,
			&tx.Category,
			&tx.Sold,
			&tx.DateOfSale,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear transação: %w", err)
		}
		transactions = append(transactions, tx)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return transactions, nil
}

func (r *transactionRepository) GetStatistics(ctx context.Context, month string) (*domain.Statistics, error) {
	query, args, err := statisticsQuery(month).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var (
		totalSales decimal.Decimal
		stats      domain.Statistics
	)

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&totalSales, &stats.SoldItems, &stats.NotSoldItems)
	if err != nil {
		return nil, wrapDBError("calcular estatísticas", err)
	}

	stats.TotalSales = utils.RoundMoney(totalSales)

	return &stats, nil
}

func (r *transactionRepository) CountByPriceBucket(ctx context.Context, month string, bucket domain.PriceBucket) (int64, error) {
	query, args, err := priceBucketQuery(month, bucket).ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int64
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, wrapDBError("contar a faixa de preço "+bucket.Range, err)
	}

	return count, nil
}

func (r *transactionRepository) CountByCategory(ctx context.Context, month string) ([]domain.CategoryCount, error) {
	query, args, err := categoryQuery(month).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError("agrupar por categoria", err)
	}
	defer rows.Close()

	categories := make([]domain.CategoryCount, 0)
	for rows.Next() {
		var item domain.CategoryCount
		if err := rows.Scan(&item.Category, &item.Count); err != nil {
			return nil, fmt.Errorf("erro ao escanear categoria: %w", err)
		}
		categories = append(categories, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return categories, nil
}

func (r *transactionRepository) Count(ctx context.Context) (int64, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(transactionsTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int64
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, wrapDBError("contar transações", err)
	}

	return count, nil
}

// ReplaceAll troca o conteúdo da tabela dentro de uma única transação: leitores
// concorrentes veem o conjunto antigo ou o novo, nunca a tabela vazia.
func (r *transactionRepository) ReplaceAll(ctx context.Context, transactions []*domain.Transaction) (int, error) {
	if err := assignIDs(transactions); err != nil {
		return 0, err
	}

	deleteQuery, deleteArgs, err := squirrel.
		Delete(transactionsTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
			return wrapDBError("apagar transações", err)
		}

		if len(transactions) == 0 {
			return nil
		}

		stmt, err := tx.PrepareContext(ctx, pq.CopyIn(transactionsTable, transactionColumns...))
		if err != nil {
			return wrapDBError("preparar a carga em lote", err)
		}
		defer stmt.Close()

		for _, t := range transactions {
			if _, err := stmt.ExecContext(ctx,
				t.ID,
				t.Title,
				t.Price,
				t.Description,
				t.Category,
				t.Sold,
				t.DateOfSale,
			); err != nil {
				return wrapDBError("enviar a transação "+t.ID, err)
			}
		}

		// Exec sem argumentos descarrega o COPY
		if _, err := stmt.ExecContext(ctx); err != nil {
			return wrapDBError("finalizar a carga em lote", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(transactions), nil
}

func assignIDs(transactions []*domain.Transaction) error {
	for _, t := range transactions {
		if t.ID != "" {
			continue
		}

		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar id: %w", err)
		}
		t.ID = id
	}

	return nil
}

func monthPredicate(month string) squirrel.Sqlizer {
	return squirrel.Like{"date_of_sale": "%" + domain.MonthToken(month) + "%"}
}

func listQuery(filter domain.TransactionFilter) squirrel.SelectBuilder {
	builder := squirrel.
		Select(transactionColumns...).
		From(transactionsTable).
		Where(monthPredicate(filter.Month))

	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		search := squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"description": pattern},
		}

		if price, ok := domain.SearchPrice(filter.Search); ok {
			search = append(search, squirrel.Eq{"price": price})
		}

		builder = builder.Where(search)
	}

	return builder.
		OrderBy("seq ASC").
		Limit(uint64(filter.Limit())).
		Offset(uint64(filter.Offset())).
		PlaceholderFormat(squirrel.Dollar)
}

func statisticsQuery(month string) squirrel.SelectBuilder {
	return squirrel.
		Select(
			"COALESCE(SUM(price) FILTER (WHERE sold), 0)",
			"COUNT(*) FILTER (WHERE sold)",
			"COUNT(*) FILTER (WHERE NOT sold)",
		).
		From(transactionsTable).
		Where(monthPredicate(month)).
		PlaceholderFormat(squirrel.Dollar)
}

func priceBucketQuery(month string, bucket domain.PriceBucket) squirrel.SelectBuilder {
	builder := squirrel.
		Select("COUNT(*)").
		From(transactionsTable).
		Where(monthPredicate(month))

	if bucket.MinInclusive {
		builder = builder.Where(squirrel.GtOrEq{"price": bucket.Min})
	} else {
		builder = builder.Where(squirrel.Gt{"price": bucket.Min})
	}

	if bucket.Bounded() {
		builder = builder.Where(squirrel.LtOrEq{"price": bucket.Max})
	}

	return builder.PlaceholderFormat(squirrel.Dollar)
}

func categoryQuery(month string) squirrel.SelectBuilder {
	return squirrel.
		Select("category", "COUNT(*)").
		From(transactionsTable).
		Where(monthPredicate(month)).
		GroupBy("category").
		OrderBy("category ASC").
		PlaceholderFormat(squirrel.Dollar)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike faz a busca ser literal: %, _ e \ digitados pelo usuário não viram curingas
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func wrapDBError(action string, err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		return fmt.Errorf("erro no banco de dados ao %s: %w (código: %s)", action, pqErr, pqErr.Code)
	}
	return fmt.Errorf("erro no banco de dados ao %s: %w", action, err)
}
