package solicitud

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
)

var _ Store = (*PGStore)(nil)

// PGStore implements Store using PostgreSQL.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

const solicitudColumns = `id, cedula, nombre, dependencia, tipo, descripcion, departamento_destino,
	fecha_creacion, status, coalesce(quien_atendio,''), coalesce(que_hizo,'')`

func (s *PGStore) Create(ctx context.Context, sol *Solicitud) error {
	row := s.db.QueryRowContext(ctx, `
		insert into solicitudes(cedula, nombre, dependencia, tipo, descripcion,
			departamento_destino, fecha_creacion, status)
		values ($1,$2,$3,$4,$5,$6,$7,$8)
		returning id`,
		sol.Cedula, sol.Nombre, sol.Dependencia, sol.Tipo, sol.Descripcion,
		sol.DepartamentoDestino, sol.FechaCreacion, sol.Estado,
	)
	return row.Scan(&sol.ID)
}

func (s *PGStore) Find(ctx context.Context, id int64) (Solicitud, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+solicitudColumns+` from solicitudes where id=$1`, id)
	sol, err := scanSolicitud(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Solicitud{}, ErrNotFound
	}
	return sol, err
}

func (s *PGStore) ListVisibleTo(ctx context.Context, departamento string) ([]Solicitud, error) {
	rows, err := s.db.QueryContext(ctx, `
		select `+solicitudColumns+` from solicitudes
		where dependencia=$1 or departamento_destino=$1
		order by fecha_creacion desc, id asc`, departamento)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// Update persists the full mutable field set of the record. Which of those
// fields actually changed was decided earlier by ApplyUpdate; the row write
// itself is one atomic statement.
func (s *PGStore) Update(ctx context.Context, sol Solicitud) error {
	res, err := s.db.ExecContext(ctx, `
		update solicitudes
		set descripcion=$2, departamento_destino=$3, status=$4,
			quien_atendio=nullif($5,''), que_hizo=nullif($6,'')
		where id=$1`,
		sol.ID, sol.Descripcion, sol.DepartamentoDestino, sol.Estado,
		sol.QuienAtendio, sol.QueHizo,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *PGStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `delete from solicitudes where id=$1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *PGStore) FindByIDs(ctx context.Context, ids []int64) ([]Solicitud, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "$" + strconv.Itoa(i+1)
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx, `
		select `+solicitudColumns+` from solicitudes
		where id in (`+strings.Join(placeholders, ",")+`)
		order by fecha_creacion desc, id asc`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (s *PGStore) All(ctx context.Context) ([]Solicitud, error) {
	rows, err := s.db.QueryContext(ctx, `
		select `+solicitudColumns+` from solicitudes
		order by fecha_creacion desc, id asc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSolicitud(row rowScanner) (Solicitud, error) {
	var sol Solicitud
	err := row.Scan(&sol.ID, &sol.Cedula, &sol.Nombre, &sol.Dependencia, &sol.Tipo,
		&sol.Descripcion, &sol.DepartamentoDestino, &sol.FechaCreacion, &sol.Estado,
		&sol.QuienAtendio, &sol.QueHizo)
	return sol, err
}

func collect(rows *sql.Rows) ([]Solicitud, error) {
	var res []Solicitud
	for rows.Next() {
		sol, err := scanSolicitud(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, sol)
	}
	return res, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
