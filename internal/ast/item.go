package ast

import (
	"ferrite/internal/source"
)

type ItemKind uint8

const (
	ItemFn ItemKind = iota
	ItemLet
	ItemConst
	ItemType
	ItemImport
)

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

type FnParam struct {
	Name source.StringID
	Span source.Span
	Type TypeRef
}

type FnItem struct {
	Name     source.StringID
	NameSpan source.Span
	Public   bool
	Params   []FnParam
	Result   TypeRef
	Body     StmtID
}

// LetItem is a top-level `let`; Value is NoExprID only after a parse error.
type LetItem struct {
	Name     source.StringID
	NameSpan source.Span
	Mutable  bool
	Type     TypeRef
	Value    ExprID
}

type ConstItem struct {
	Name     source.StringID
	NameSpan source.Span
	Type     TypeRef
	Value    ExprID
}

type TypeField struct {
	Name source.StringID
	Span source.Span
	Type TypeRef
}

type TypeItem struct {
	Name     source.StringID
	NameSpan source.Span
	Fields   []TypeField
}

type ImportItem struct {
	Path Path
}

type Items struct {
	Arena   *Arena[Item]
	Fns     *Arena[FnItem]
	Lets    *Arena[LetItem]
	Consts  *Arena[ConstItem]
	Types   *Arena[TypeItem]
	Imports *Arena[ImportItem]
}

// NewItems creates per-kind item arenas (default capacity 1<<6).
func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Items{
		Arena:   NewArena[Item](capHint),
		Fns:     NewArena[FnItem](capHint),
		Lets:    NewArena[LetItem](capHint),
		Consts:  NewArena[ConstItem](capHint),
		Types:   NewArena[TypeItem](capHint),
		Imports: NewArena[ImportItem](capHint),
	}
}

func (i *Items) new(kind ItemKind, span source.Span, payload PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) NewFn(span source.Span, fn FnItem) ItemID {
	fn.Params = append([]FnParam(nil), fn.Params...)
	payload := i.Fns.Allocate(fn)
	return i.new(ItemFn, span, PayloadID(payload))
}

func (i *Items) Fn(id ItemID) (*FnItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemFn {
		return nil, false
	}
	return i.Fns.Get(uint32(item.Payload)), true
}

func (i *Items) NewLet(span source.Span, let LetItem) ItemID {
	payload := i.Lets.Allocate(let)
	return i.new(ItemLet, span, PayloadID(payload))
}

func (i *Items) Let(id ItemID) (*LetItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemLet {
		return nil, false
	}
	return i.Lets.Get(uint32(item.Payload)), true
}

func (i *Items) NewConst(span source.Span, c ConstItem) ItemID {
	payload := i.Consts.Allocate(c)
	return i.new(ItemConst, span, PayloadID(payload))
}

func (i *Items) Const(id ItemID) (*ConstItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemConst {
		return nil, false
	}
	return i.Consts.Get(uint32(item.Payload)), true
}

func (i *Items) NewType(span source.Span, t TypeItem) ItemID {
	t.Fields = append([]TypeField(nil), t.Fields...)
	payload := i.Types.Allocate(t)
	return i.new(ItemType, span, PayloadID(payload))
}

func (i *Items) Type(id ItemID) (*TypeItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemType {
		return nil, false
	}
	return i.Types.Get(uint32(item.Payload)), true
}

func (i *Items) NewImport(span source.Span, path Path) ItemID {
	payload := i.Imports.Allocate(ImportItem{Path: path})
	return i.new(ItemImport, span, PayloadID(payload))
}

func (i *Items) Import(id ItemID) (*ImportItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemImport {
		return nil, false
	}
	return i.Imports.Get(uint32(item.Payload)), true
}
