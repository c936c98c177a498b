package xpcache

// lruList 是穿透式（intrusive）双向链表，链域直接存放在 cacheEntry 上。
// front 端为最近使用（MRU），back 端为最久未使用（LRU）。
//
// 设计决策: 穿透式链接使所有操作都是 O(1)，且无需在 LRU 层维护
// 任何二级索引——调用方从缓存 map 拿到的就是节点本身。
// 链表不做并发保护，由持有它的缓存在自身锁内访问。
type lruList[V any] struct {
	front *cacheEntry[V] // MRU
	back  *cacheEntry[V] // LRU
}

func newLRUList[V any]() *lruList[V] {
	return &lruList[V]{}
}

// pushFront 将 entry 插入为新的 MRU。
// 前置条件：entry 不在链表中（链域为 nil）。
func (l *lruList[V]) pushFront(e *cacheEntry[V]) {
	e.prev = nil
	e.next = l.front
	if l.front != nil {
		l.front.prev = e
	}
	l.front = e
	if l.back == nil {
		l.back = e
	}
}

// touch 将已链入的 entry 提升为 MRU。已是 MRU 时为无操作。
func (l *lruList[V]) touch(e *cacheEntry[V]) {
	if l.front == e {
		return
	}
	l.remove(e)
	l.pushFront(e)
}

// remove 将 entry 从链表中摘除并将链域复位为 nil。
// entry 不在链表中时为无操作（防御性，不得 panic）。
func (l *lruList[V]) remove(e *cacheEntry[V]) {
	if !l.contains(e) {
		return
	}
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.front = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.back = e.prev
	}
	e.prev = nil
	e.next = nil
}

// peekBack 返回当前的 LRU 节点，不摘除。链表为空时返回 nil。
func (l *lruList[V]) peekBack() *cacheEntry[V] {
	return l.back
}

// contains 判断 entry 是否链入本链表。
// 未链入节点的链域均为 nil，单节点链表通过 front 指针识别。
func (l *lruList[V]) contains(e *cacheEntry[V]) bool {
	return e.prev != nil || e.next != nil || l.front == e
}
