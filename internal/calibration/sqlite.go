package calibration

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"quotesynth/internal/dist"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// LoadSQLite reads a calibration pack produced by the data pipeline and
// returns the built-in set with the pack's tables swapped in. Overrides are
// whole-table: providing any row for a table name replaces every built-in row
// of that table, so partial edits must carry the full table.
//
// The pack schema, all tables optional:
//
//	categorical(table_name TEXT, cond_key TEXT, label TEXT, weight REAL)
//	rate(table_name TEXT, cond_key TEXT, rate REAL)
//	param(table_name TEXT, cond_key TEXT, family TEXT, loc REAL, scale REAL)
//	curve(table_name TEXT, x REAL, y REAL)
//	vehicle(slug TEXT, make TEXT, model TEXT, fuel TEXT, body TEXT,
//	        engine_cc INTEGER, new_price INTEGER, weight REAL)
//	occupation_lookup(code TEXT, title TEXT)
//
// cond_key is comma separated, one part per conditioning column, empty for
// unconditioned tables; "*" marks a fallback row. Table names, arities and
// fallback masks must match the registry; anything else is rejected.
func LoadSQLite(path string) (*Set, error) {
	// The driver would create a missing file; a pack must already exist.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open calibration pack: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open calibration pack: %w", err)
	}
	defer func() { _ = db.Close() }()
	return loadPack(db)
}

func loadPack(db *sql.DB) (*Set, error) {
	s := Builtin()
	present, err := packTables(db)
	if err != nil {
		return nil, err
	}
	if present["categorical"] {
		if err := loadCategorical(db, s); err != nil {
			return nil, err
		}
	}
	if present["rate"] {
		if err := loadRates(db, s); err != nil {
			return nil, err
		}
	}
	if present["param"] {
		if err := loadParams(db, s); err != nil {
			return nil, err
		}
	}
	if present["curve"] {
		if err := loadCurves(db, s); err != nil {
			return nil, err
		}
	}
	if present["vehicle"] {
		if err := loadVehicles(db, s); err != nil {
			return nil, err
		}
	}
	if present["occupation_lookup"] {
		if err := loadOccupations(db, s); err != nil {
			return nil, err
		}
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("calibration pack: %w", err)
	}
	return s, nil
}

func packTables(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type = 'table'`)
	if err != nil {
		return nil, fmt.Errorf("list pack tables: %w", err)
	}
	defer func() { _ = rows.Close() }()
	present := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		present[name] = true
	}
	return present, rows.Err()
}

func loadCategorical(db *sql.DB, s *Set) error {
	rows, err := db.Query(`SELECT table_name, cond_key, label, weight FROM categorical ORDER BY table_name, cond_key, label`)
	if err != nil {
		return fmt.Errorf("select categorical: %w", err)
	}
	defer func() { _ = rows.Close() }()

	type group struct{ name, cond string }
	weights := make(map[group]map[string]float64)
	var order []group
	for rows.Next() {
		var (
			g      group
			label  string
			weight float64
		)
		if err := rows.Scan(&g.name, &g.cond, &label, &weight); err != nil {
			return fmt.Errorf("scan categorical: %w", err)
		}
		if weights[g] == nil {
			weights[g] = make(map[string]float64)
			order = append(order, g)
		}
		weights[g][label] = weight
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read categorical: %w", err)
	}

	fresh := make(map[string]*dist.CategoricalTable)
	for _, g := range order {
		spec, ok := registry[g.name]
		if !ok || spec.Shape != ShapeCategorical {
			return fmt.Errorf("categorical rows for unknown table %q", g.name)
		}
		t := fresh[g.name]
		if t == nil {
			t = dist.NewTable[dist.Categorical](g.name, spec.Arity, spec.Masks...)
			fresh[g.name] = t
		}
		key, err := parseCondKey(g.cond, spec.Arity)
		if err != nil {
			return fmt.Errorf("table %q: %w", g.name, err)
		}
		c, err := dist.NewCategorical(weights[g])
		if err != nil {
			return fmt.Errorf("table %q key (%s): %w", g.name, key, err)
		}
		t.Put(key, c)
	}
	for name, t := range fresh {
		s.categorical[name] = t
	}
	return nil
}

func loadRates(db *sql.DB, s *Set) error {
	rows, err := db.Query(`SELECT table_name, cond_key, rate FROM rate ORDER BY table_name, cond_key`)
	if err != nil {
		return fmt.Errorf("select rate: %w", err)
	}
	defer func() { _ = rows.Close() }()

	fresh := make(map[string]*dist.Table[float64])
	for rows.Next() {
		var (
			name, cond string
			rate       float64
		)
		if err := rows.Scan(&name, &cond, &rate); err != nil {
			return fmt.Errorf("scan rate: %w", err)
		}
		spec, ok := registry[name]
		if !ok || spec.Shape != ShapeRate {
			return fmt.Errorf("rate rows for unknown table %q", name)
		}
		t := fresh[name]
		if t == nil {
			t = dist.NewTable[float64](name, spec.Arity, spec.Masks...)
			fresh[name] = t
		}
		key, err := parseCondKey(cond, spec.Arity)
		if err != nil {
			return fmt.Errorf("table %q: %w", name, err)
		}
		t.Put(key, rate)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read rate: %w", err)
	}
	for name, t := range fresh {
		s.rates[name] = t
	}
	return nil
}

func loadParams(db *sql.DB, s *Set) error {
	rows, err := db.Query(`SELECT table_name, cond_key, family, loc, scale FROM param ORDER BY table_name, cond_key`)
	if err != nil {
		return fmt.Errorf("select param: %w", err)
	}
	defer func() { _ = rows.Close() }()

	fresh := make(map[string]*dist.ParamTable)
	for rows.Next() {
		var (
			name, cond, family string
			loc, scale         float64
		)
		if err := rows.Scan(&name, &cond, &family, &loc, &scale); err != nil {
			return fmt.Errorf("scan param: %w", err)
		}
		spec, ok := registry[name]
		if !ok || spec.Shape != ShapeParam {
			return fmt.Errorf("param rows for unknown table %q", name)
		}
		t := fresh[name]
		if t == nil {
			t = dist.NewTable[dist.Param](name, spec.Arity, spec.Masks...)
			fresh[name] = t
		}
		key, err := parseCondKey(cond, spec.Arity)
		if err != nil {
			return fmt.Errorf("table %q: %w", name, err)
		}
		p := dist.Param{Family: dist.Family(family), Loc: loc, Scale: scale}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("table %q key (%s): %w", name, key, err)
		}
		t.Put(key, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read param: %w", err)
	}
	for name, t := range fresh {
		s.params[name] = t
	}
	return nil
}

func loadCurves(db *sql.DB, s *Set) error {
	rows, err := db.Query(`SELECT table_name, x, y FROM curve ORDER BY table_name, x`)
	if err != nil {
		return fmt.Errorf("select curve: %w", err)
	}
	defer func() { _ = rows.Close() }()

	points := make(map[string][]dist.Point)
	for rows.Next() {
		var (
			name string
			x, y float64
		)
		if err := rows.Scan(&name, &x, &y); err != nil {
			return fmt.Errorf("scan curve: %w", err)
		}
		spec, ok := registry[name]
		if !ok || spec.Shape != ShapeCurve {
			return fmt.Errorf("curve rows for unknown table %q", name)
		}
		points[name] = append(points[name], dist.Point{X: x, Y: y})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read curve: %w", err)
	}
	for name, pts := range points {
		c, err := dist.NewCurve(pts)
		if err != nil {
			return fmt.Errorf("curve %q: %w", name, err)
		}
		s.curves[name] = c
	}
	return nil
}

func loadVehicles(db *sql.DB, s *Set) error {
	rows, err := db.Query(`SELECT slug, make, model, fuel, body, engine_cc, new_price, weight FROM vehicle ORDER BY slug`)
	if err != nil {
		return fmt.Errorf("select vehicle: %w", err)
	}
	defer func() { _ = rows.Close() }()

	vehicles := make(map[string]VehicleSpec)
	weights := make(map[string]float64)
	for rows.Next() {
		var v VehicleSpec
		if err := rows.Scan(&v.Slug, &v.Make, &v.Model, &v.Fuel, &v.Body, &v.EngineCC, &v.NewPrice, &v.Weight); err != nil {
			return fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles[v.Slug] = v
		weights[v.Slug] = v.Weight
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read vehicle: %w", err)
	}
	model, err := dist.NewCategorical(weights)
	if err != nil {
		return fmt.Errorf("vehicle weights: %w", err)
	}
	spec := registry[TableVehicleModel]
	t := dist.NewTable[dist.Categorical](TableVehicleModel, spec.Arity, spec.Masks...)
	t.Put(dist.K(), model)
	s.vehicles = vehicles
	s.categorical[TableVehicleModel] = t
	return nil
}

func loadOccupations(db *sql.DB, s *Set) error {
	rows, err := db.Query(`SELECT code, title FROM occupation_lookup ORDER BY code`)
	if err != nil {
		return fmt.Errorf("select occupation_lookup: %w", err)
	}
	defer func() { _ = rows.Close() }()

	titles := make(map[string]string)
	for rows.Next() {
		var code, title string
		if err := rows.Scan(&code, &title); err != nil {
			return fmt.Errorf("scan occupation_lookup: %w", err)
		}
		titles[code] = title
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read occupation_lookup: %w", err)
	}
	s.occupations = titles
	return nil
}

func parseCondKey(cond string, arity int) (dist.Key, error) {
	cond = strings.TrimSpace(cond)
	if cond == "" {
		if arity != 0 {
			return nil, fmt.Errorf("empty condition key, want %d parts", arity)
		}
		return dist.Key{}, nil
	}
	parts := strings.Split(cond, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) != arity {
		return nil, fmt.Errorf("condition key %q has %d parts, want %d", cond, len(parts), arity)
	}
	return dist.Key(parts), nil
}
