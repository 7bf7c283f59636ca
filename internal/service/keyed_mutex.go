package service

import "sync"

// KeyedMutex обеспечивает взаимное исключение по ключу (идентификатору
// сотрудника). Последовательности "проверить, затем изменить" в замене
// сотрудника и создании вознаграждения выполняются под блокировкой ключа,
// чтобы два конкурентных запроса по одному сотруднику не нарушили инварианты.
// Запись ключа удаляется, когда его никто не держит и не ждёт: карта растёт
// только с числом одновременно обрабатываемых ключей.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedMutex создаёт новый экземпляр
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[string]*keyedLock),
	}
}

// Lock захватывает блокировку ключа и возвращает функцию освобождения
func (m *KeyedMutex) Lock(key string) func() {
	m.mu.Lock()
	lock, ok := m.locks[key]
	if !ok {
		lock = &keyedLock{}
		m.locks[key] = lock
	}
	lock.refs++
	m.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		m.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(m.locks, key)
		}
		m.mu.Unlock()
	}
}
