package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Receipt struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Method        string
	Subtotal      pgtype.Numeric
	Tax           pgtype.Numeric
	Total         pgtype.Numeric
	TransactionID string
	PaidAt        pgtype.Timestamptz
	OrderDetails  []byte
	CreatedAt     pgtype.Timestamptz
}

const insertReceipt = `-- name: InsertReceipt :one
insert into receipts (id, user_id, method, subtotal, tax, total, transaction_id, paid_at, order_details)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
returning id, user_id, method, subtotal, tax, total, transaction_id, paid_at, order_details, created_at
`

type InsertReceiptParams struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Method        string
	Subtotal      pgtype.Numeric
	Tax           pgtype.Numeric
	Total         pgtype.Numeric
	TransactionID string
	PaidAt        pgtype.Timestamptz
	OrderDetails  []byte
}

func (q *Queries) InsertReceipt(ctx context.Context, arg InsertReceiptParams) (Receipt, error) {
	row := q.db.QueryRow(ctx, insertReceipt,
		arg.ID,
		arg.UserID,
		arg.Method,
		arg.Subtotal,
		arg.Tax,
		arg.Total,
		arg.TransactionID,
		arg.PaidAt,
		arg.OrderDetails,
	)
	var i Receipt
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Method,
		&i.Subtotal,
		&i.Tax,
		&i.Total,
		&i.TransactionID,
		&i.PaidAt,
		&i.OrderDetails,
		&i.CreatedAt,
	)
	return i, err
}

const findReceiptById = `-- name: FindReceiptById :one
select id, user_id, method, subtotal, tax, total, transaction_id, paid_at, order_details, created_at
from receipts
where id = $1 and user_id = $2
`

type FindReceiptByIdParams struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

func (q *Queries) FindReceiptById(ctx context.Context, arg FindReceiptByIdParams) (Receipt, error) {
	row := q.db.QueryRow(ctx, findReceiptById, arg.ID, arg.UserID)
	var i Receipt
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Method,
		&i.Subtotal,
		&i.Tax,
		&i.Total,
		&i.TransactionID,
		&i.PaidAt,
		&i.OrderDetails,
		&i.CreatedAt,
	)
	return i, err
}

const findReceiptsByUserId = `-- name: FindReceiptsByUserId :many
select id, user_id, method, subtotal, tax, total, transaction_id, paid_at, order_details, created_at
from receipts
where user_id = $1
order by created_at desc
`

func (q *Queries) FindReceiptsByUserId(ctx context.Context, userID uuid.UUID) ([]Receipt, error) {
	rows, err := q.db.Query(ctx, findReceiptsByUserId, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Receipt{}
	for rows.Next() {
		var i Receipt
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.Method,
			&i.Subtotal,
			&i.Tax,
			&i.Total,
			&i.TransactionID,
			&i.PaidAt,
			&i.OrderDetails,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
