package backend

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

var timeType = reflect.TypeOf(time.Time{})

// Memory serves Client from process memory. It backs DB_DRIVER=memory and
// the package tests of every caller. Column names and unique indexes come
// from the gorm schema of each model.
type Memory struct {
	mu       sync.Mutex
	tables   map[string][]reflect.Value
	schemas  *sync.Map
	now      func() time.Time
	last     time.Time
	counts   map[string]int
	failures map[string]error
}

func NewMemory() *Memory {
	return &Memory{
		tables:   map[string][]reflect.Value{},
		schemas:  &sync.Map{},
		now:      time.Now,
		counts:   map[string]int{},
		failures: map[string]error{},
	}
}

func opKey(op, table string) string {
	return op + ":" + table
}

// Count reports how many times op ("select", "insert", "update", "upsert",
// "rpc") ran against table (or RPC name).
func (m *Memory) Count(op, table string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[opKey(op, table)]
}

// Fail makes every later op against table return err. A nil err clears it.
func (m *Memory) Fail(op, table string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, opKey(op, table))
		return
	}
	m.failures[opKey(op, table)] = err
}

// Len reports the number of stored rows of table.
func (m *Memory) Len(table string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tables[table])
}

func (m *Memory) begin(op, table string) error {
	m.counts[opKey(op, table)]++
	return m.failures[opKey(op, table)]
}

func (m *Memory) parse(v any) (*schema.Schema, error) {
	return schema.Parse(v, m.schemas, schema.NamingStrategy{})
}

// stamp returns a strictly increasing timestamp so created_at orders inserts.
func (m *Memory) stamp() time.Time {
	t := m.now()
	if !t.After(m.last) {
		t = m.last.Add(time.Microsecond)
	}
	m.last = t
	return t
}

func (m *Memory) target(row any) (reflect.Value, *schema.Schema, error) {
	rv := reflect.ValueOf(row)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return rv, nil, fmt.Errorf("backend: expected pointer to struct, got %T", row)
	}
	sch, err := m.parse(row)
	if err != nil {
		return rv, nil, err
	}
	return rv, sch, nil
}

func (m *Memory) Select(ctx context.Context, dest any, q Query) error {
	out := reflect.ValueOf(dest)
	if out.Kind() != reflect.Ptr || out.Elem().Kind() != reflect.Slice || out.Elem().Type().Elem().Kind() != reflect.Struct {
		return fmt.Errorf("backend: select dest must point to a slice of structs, got %T", dest)
	}
	sliceType := out.Elem().Type()
	sch, err := m.parse(reflect.New(sliceType.Elem()).Interface())
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("select", sch.Table); err != nil {
		return err
	}

	rows, err := m.match(sch, q.Filters)
	if err != nil {
		return err
	}
	if q.Order != "" {
		if err := sortRows(sch, rows, q.Order); err != nil {
			return err
		}
	}
	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}

	result := reflect.MakeSlice(sliceType, 0, len(rows))
	for _, row := range rows {
		cp := clone(row)
		if err := m.join(cp, q.Joins); err != nil {
			return err
		}
		result = reflect.Append(result, cp.Elem())
	}
	out.Elem().Set(result)
	return nil
}

func (m *Memory) Insert(ctx context.Context, row any) error {
	rv, sch, err := m.target(row)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("insert", sch.Table); err != nil {
		return err
	}
	return m.insert(sch, rv)
}

func (m *Memory) insert(sch *schema.Schema, rv reflect.Value) error {
	if h, ok := rv.Interface().(interface{ BeforeCreate(*gorm.DB) error }); ok {
		if err := h.BeforeCreate(nil); err != nil {
			return err
		}
	}
	now := m.stamp()
	setTimeIfZero(rv.Elem(), "CreatedAt", now)
	setTimeIfZero(rv.Elem(), "UpdatedAt", now)

	if err := m.checkUnique(sch, rv); err != nil {
		return err
	}

	stored := clone(rv)
	sch.Relationships.Mux.RLock()
	for name := range sch.Relationships.Relations {
		if f := stored.Elem().FieldByName(name); f.IsValid() && f.CanSet() {
			f.Set(reflect.Zero(f.Type()))
		}
	}
	sch.Relationships.Mux.RUnlock()

	m.tables[sch.Table] = append(m.tables[sch.Table], stored)
	return nil
}

func (m *Memory) Update(ctx context.Context, model any, q Query, fields map[string]any) (int64, error) {
	_, sch, err := m.target(model)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("update", sch.Table); err != nil {
		return 0, err
	}
	if len(q.Filters) == 0 {
		return 0, gorm.ErrMissingWhereClause
	}

	rows, err := m.match(sch, q.Filters)
	if err != nil {
		return 0, err
	}
	now := m.stamp()
	for _, row := range rows {
		cp := clone(row)
		for col, val := range fields {
			field := sch.LookUpField(col)
			if field == nil {
				return 0, fmt.Errorf("backend: unknown column %s.%s", sch.Table, col)
			}
			if err := assign(cp.Elem().FieldByName(field.Name), val); err != nil {
				return 0, fmt.Errorf("backend: %s.%s: %w", sch.Table, col, err)
			}
		}
		setTime(cp.Elem(), "UpdatedAt", now)
		row.Elem().Set(cp.Elem())
	}
	return int64(len(rows)), nil
}

func (m *Memory) Upsert(ctx context.Context, row any, conflict []string, columns []string) error {
	rv, sch, err := m.target(row)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("upsert", sch.Table); err != nil {
		return err
	}

	filters := make([]Filter, 0, len(conflict))
	for _, col := range conflict {
		field := sch.LookUpField(col)
		if field == nil {
			return fmt.Errorf("backend: unknown column %s.%s", sch.Table, col)
		}
		filters = append(filters, Eq(col, rv.Elem().FieldByName(field.Name).Interface()))
	}
	existing, err := m.match(sch, filters)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		return m.insert(sch, rv)
	}

	target := existing[0]
	for _, col := range columns {
		field := sch.LookUpField(col)
		if field == nil {
			return fmt.Errorf("backend: unknown column %s.%s", sch.Table, col)
		}
		target.Elem().FieldByName(field.Name).Set(rv.Elem().FieldByName(field.Name))
	}
	setTime(target.Elem(), "UpdatedAt", m.stamp())
	return nil
}

func (m *Memory) Call(ctx context.Context, fn string, args map[string]any) (any, error) {
	m.mu.Lock()
	err := m.begin("rpc", fn)
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return callRPC(ctx, m, fn, args)
}

func (m *Memory) match(sch *schema.Schema, filters []Filter) ([]reflect.Value, error) {
	var out []reflect.Value
	for _, row := range m.tables[sch.Table] {
		ok, err := matches(sch, row.Elem(), filters)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *Memory) checkUnique(sch *schema.Schema, rv reflect.Value) error {
	for _, idx := range sch.ParseIndexes() {
		if idx.Class != "UNIQUE" {
			continue
		}
		for _, other := range m.tables[sch.Table] {
			same := true
			for _, opt := range idx.Fields {
				if !equal(rv.Elem().FieldByName(opt.Name).Interface(), other.Elem().FieldByName(opt.Name).Interface()) {
					same = false
					break
				}
			}
			if same {
				return fmt.Errorf("%w: %s", ErrConflict, idx.Name)
			}
		}
	}
	return nil
}

// join loads belongs-to associations by the "<Name>ID" convention.
func (m *Memory) join(row reflect.Value, joins []string) error {
	v := row.Elem()
	for _, name := range joins {
		rel := v.FieldByName(name)
		fk := v.FieldByName(name + "ID")
		if !rel.IsValid() || !fk.IsValid() {
			return fmt.Errorf("backend: unknown join %s on %s", name, v.Type())
		}
		key := indirect(fk)
		if !key.IsValid() {
			continue
		}

		targetType := rel.Type()
		if targetType.Kind() == reflect.Ptr {
			targetType = targetType.Elem()
		}
		sch, err := m.parse(reflect.New(targetType).Interface())
		if err != nil {
			return err
		}
		pk := sch.PrioritizedPrimaryField
		if pk == nil {
			return fmt.Errorf("backend: %s has no primary key", sch.Table)
		}
		for _, cand := range m.tables[sch.Table] {
			if equal(cand.Elem().FieldByName(pk.Name).Interface(), key.Interface()) {
				cp := clone(cand)
				if rel.Kind() == reflect.Ptr {
					rel.Set(cp)
				} else {
					rel.Set(cp.Elem())
				}
				break
			}
		}
	}
	return nil
}

func matches(sch *schema.Schema, v reflect.Value, filters []Filter) (bool, error) {
	for _, f := range filters {
		field := sch.LookUpField(f.Column)
		if field == nil {
			return false, fmt.Errorf("backend: unknown column %s.%s", sch.Table, f.Column)
		}
		if !equal(v.FieldByName(field.Name).Interface(), f.Value) {
			return false, nil
		}
	}
	return true, nil
}

func sortRows(sch *schema.Schema, rows []reflect.Value, order string) error {
	parts := strings.Fields(order)
	if len(parts) == 0 {
		return nil
	}
	field := sch.LookUpField(parts[0])
	if field == nil {
		return fmt.Errorf("backend: unknown order column %s.%s", sch.Table, parts[0])
	}
	desc := len(parts) > 1 && strings.EqualFold(parts[1], "desc")
	sort.SliceStable(rows, func(i, j int) bool {
		a := indirect(rows[i].Elem().FieldByName(field.Name))
		b := indirect(rows[j].Elem().FieldByName(field.Name))
		if desc {
			return less(b, a)
		}
		return less(a, b)
	})
	return nil
}

// less orders NULL first, then times, strings and numbers.
func less(a, b reflect.Value) bool {
	if !a.IsValid() {
		return b.IsValid()
	}
	if !b.IsValid() {
		return false
	}
	if a.Type().ConvertibleTo(timeType) && a.Kind() == reflect.Struct {
		return a.Convert(timeType).Interface().(time.Time).Before(b.Convert(timeType).Interface().(time.Time))
	}
	switch a.Kind() {
	case reflect.String:
		return a.String() < b.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() < b.Int()
	case reflect.Float32, reflect.Float64:
		return a.Float() < b.Float()
	}
	return false
}

func equal(a, b any) bool {
	av, bv := indirect(reflect.ValueOf(a)), indirect(reflect.ValueOf(b))
	if !av.IsValid() || !bv.IsValid() {
		return av.IsValid() == bv.IsValid()
	}
	if av.Type() != bv.Type() {
		if av.Kind() != bv.Kind() || !bv.Type().ConvertibleTo(av.Type()) {
			return false
		}
		bv = bv.Convert(av.Type())
	}
	return reflect.DeepEqual(av.Interface(), bv.Interface())
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func clone(row reflect.Value) reflect.Value {
	cp := reflect.New(row.Elem().Type())
	cp.Elem().Set(row.Elem())
	return cp
}

// assign stores v into dst, wrapping or unwrapping one pointer level and
// converting between named types with the same underlying kind. nil clears.
func assign(dst reflect.Value, v any) error {
	if !dst.IsValid() || !dst.CanSet() {
		return fmt.Errorf("field not settable")
	}
	src := reflect.ValueOf(v)
	if !src.IsValid() || (src.Kind() == reflect.Ptr && src.IsNil()) {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}
	if src.Type().AssignableTo(dst.Type()) {
		dst.Set(src)
		return nil
	}
	if src.Kind() == reflect.Ptr {
		src = src.Elem()
		if src.Type().AssignableTo(dst.Type()) {
			dst.Set(src)
			return nil
		}
	}
	target := dst.Type()
	if target.Kind() == reflect.Ptr {
		target = target.Elem()
	}
	var val reflect.Value
	switch {
	case src.Type().AssignableTo(target):
		val = src
	case src.Kind() == target.Kind() && src.Type().ConvertibleTo(target):
		val = src.Convert(target)
	default:
		return fmt.Errorf("cannot assign %s to %s", src.Type(), dst.Type())
	}
	if dst.Kind() == reflect.Ptr {
		p := reflect.New(target)
		p.Elem().Set(val)
		dst.Set(p)
		return nil
	}
	dst.Set(val)
	return nil
}

func setTimeIfZero(v reflect.Value, name string, t time.Time) {
	f := v.FieldByName(name)
	if f.IsValid() && f.Type() == timeType && f.Interface().(time.Time).IsZero() {
		f.Set(reflect.ValueOf(t))
	}
}

func setTime(v reflect.Value, name string, t time.Time) {
	f := v.FieldByName(name)
	if f.IsValid() && f.Type() == timeType {
		f.Set(reflect.ValueOf(t))
	}
}
