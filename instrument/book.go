package instrument

import "fmt"

// Book 当前市场快照集合：标的与活跃期权。
// 每步整体替换；期权对应的标的必须按 ID 向最新列表解析，不缓存跨步引用。
type Book struct {
	Underlyings []Underlying
	Options     []Option
}

// NewBook 组装快照集合。
func NewBook(underlyings []Underlying, options []Option) Book {
	return Book{Underlyings: underlyings, Options: options}
}

// UnderlyingByID 按 ID 解析标的快照。
func (b Book) UnderlyingByID(id int) (Underlying, error) {
	for _, u := range b.Underlyings {
		if u.ID == id {
			return u, nil
		}
	}
	return Underlying{}, fmt.Errorf("underlying %d: %w", id, ErrUnknownUnderlying)
}

// UnderlyingFor 解析期权对应的标的。
func (b Book) UnderlyingFor(o Option) (Underlying, error) {
	return b.UnderlyingByID(o.UnderlyingID)
}
