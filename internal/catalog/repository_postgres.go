package catalog

import (
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
)

// PostgresRepository is the optional database-backed catalog used when
// DATABASE_URL is set. List-shaped JSON columns (images, features,
// specifications) are stored as jsonb.
type PostgresRepository struct {
	db *sql.DB
}

const productColumns = `id, name, description, price, original_price, category, brand, images, stock, rating, review_count, features, specifications, created_at, updated_at`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() []Product {
	rows, err := r.db.Query(`SELECT ` + productColumns + ` FROM products ORDER BY created_at`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *PostgresRepository) GetByID(id string) (Product, error) {
	row := r.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	images, features, specs, err := marshalJSONColumns(p)
	if err != nil {
		return Product{}, err
	}
	_, err = r.db.Exec(
		`INSERT INTO products (`+productColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		p.ID, p.Name, p.Description, p.Price, p.OriginalPrice, p.Category, p.Brand,
		images, p.Stock, p.Rating, p.ReviewCount, features, specs, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id string, p Product) (Product, error) {
	images, features, specs, err := marshalJSONColumns(p)
	if err != nil {
		return Product{}, err
	}
	res, err := r.db.Exec(
		`UPDATE products SET name=$1, description=$2, price=$3, original_price=$4, category=$5, brand=$6, images=$7, stock=$8, rating=$9, review_count=$10, features=$11, specifications=$12, updated_at=$13 WHERE id=$14`,
		p.Name, p.Description, p.Price, p.OriginalPrice, p.Category, p.Brand,
		images, p.Stock, p.Rating, p.ReviewCount, features, specs, p.UpdatedAt, id,
	)
	if err != nil {
		return Product{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Product{}, ErrNotFound
	}
	p.ID = id
	return p, nil
}

func (r *PostgresRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var (
		p             Product
		originalPrice sql.NullFloat64
		images        []byte
		features      []byte
		specs         []byte
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &originalPrice, &p.Category, &p.Brand,
		&images, &p.Stock, &p.Rating, &p.ReviewCount, &features, &specs, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return Product{}, err
	}
	if originalPrice.Valid {
		v := originalPrice.Float64
		p.OriginalPrice = &v
	}
	// jsonb columns may be NULL; leave fields empty in that case
	if len(images) > 0 {
		_ = json.Unmarshal(images, &p.Images)
	}
	if len(features) > 0 {
		_ = json.Unmarshal(features, &p.Features)
	}
	if len(specs) > 0 {
		_ = json.Unmarshal(specs, &p.Specifications)
	}
	return p, nil
}

func marshalJSONColumns(p Product) (images, features, specs []byte, err error) {
	if images, err = json.Marshal(p.Images); err != nil {
		return nil, nil, nil, err
	}
	if features, err = json.Marshal(p.Features); err != nil {
		return nil, nil, nil, err
	}
	if specs, err = json.Marshal(p.Specifications); err != nil {
		return nil, nil, nil, err
	}
	return images, features, specs, nil
}
