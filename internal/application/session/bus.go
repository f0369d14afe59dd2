// Package session mantiene el estado de sesión a nivel de proceso: un bus de
// eventos de ciclo de vida y un store de sesiones activas consultable por el
// guard. Reemplaza el estado ambiente del proveedor por dependencias
// explícitas e inyectadas.
package session

import (
	"sync"

	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/auth"
)

// Bus entrega eventos de sesión a sus suscriptores en orden de emisión y a
// lo sumo una vez por evento, hasta que cancelan la suscripción. Un
// suscriptor que dejó de leer no bloquea al emisor: sus eventos se
// descartan.
type Bus struct {
	mu     sync.Mutex
	subs   map[int]chan auth.Event
	next   int
	closed bool
}

// NewBus crea el bus de eventos de sesión.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan auth.Event)}
}

// Subscribe registra un suscriptor y devuelve su canal junto con la función
// de cancelación. Tras cancelar no se entregan más eventos y el canal se
// cierra.
func (b *Bus) Subscribe() (<-chan auth.Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan auth.Event, 32)
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if c, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// Publish entrega el evento a todos los suscriptores activos sin bloquear.
func (b *Bus) Publish(e auth.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
			// suscriptor saturado: dejó de escuchar, se descarta el evento
		}
	}
}

// Close cierra el bus y todos los canales de suscriptores.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
