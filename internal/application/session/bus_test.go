package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aportes-sugerencias/sugerencias-api/internal/application/session"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/auth"
)

func recvEvent(t *testing.T, ch <-chan auth.Event) auth.Event {
	t.Helper()
	select {
	case e, ok := <-ch:
		require.True(t, ok, "el canal no debe estar cerrado")
		return e
	case <-time.After(time.Second):
		t.Fatal("timeout esperando evento")
		return auth.Event{}
	}
}

// Los eventos llegan en orden de emisión y a lo sumo una vez.
func TestBus_OrdenDeEntrega(t *testing.T) {
	bus := session.NewBus()
	defer bus.Close()

	ch, cancel := bus.Subscribe()
	defer cancel()

	bus.Publish(auth.Event{Kind: auth.EventSignedIn, AccessToken: "t1"})
	bus.Publish(auth.Event{Kind: auth.EventPasswordRecovery, AccessToken: "t1"})
	bus.Publish(auth.Event{Kind: auth.EventSignedOut, AccessToken: "t1"})

	assert.Equal(t, auth.EventSignedIn, recvEvent(t, ch).Kind)
	assert.Equal(t, auth.EventPasswordRecovery, recvEvent(t, ch).Kind)
	assert.Equal(t, auth.EventSignedOut, recvEvent(t, ch).Kind)
}

// Tras cancelar la suscripción no se entregan más eventos.
func TestBus_CancelarSuscripcion(t *testing.T) {
	bus := session.NewBus()
	defer bus.Close()

	ch, cancel := bus.Subscribe()
	cancel()

	bus.Publish(auth.Event{Kind: auth.EventSignedIn, AccessToken: "t1"})

	_, ok := <-ch
	assert.False(t, ok, "el canal debe quedar cerrado tras cancelar")
}

// Varios suscriptores reciben cada uno su copia del evento.
func TestBus_MultiplesSuscriptores(t *testing.T) {
	bus := session.NewBus()
	defer bus.Close()

	ch1, cancel1 := bus.Subscribe()
	defer cancel1()
	ch2, cancel2 := bus.Subscribe()
	defer cancel2()

	bus.Publish(auth.Event{Kind: auth.EventSignedIn, AccessToken: "t1"})

	assert.Equal(t, "t1", recvEvent(t, ch1).AccessToken)
	assert.Equal(t, "t1", recvEvent(t, ch2).AccessToken)
}

// Un suscriptor saturado no bloquea al emisor: los eventos de más se
// descartan en silencio.
func TestBus_SuscriptorSaturadoNoBloquea(t *testing.T) {
	bus := session.NewBus()
	defer bus.Close()

	_, cancel := bus.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			bus.Publish(auth.Event{Kind: auth.EventSignedIn, AccessToken: "t"})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish se bloqueó con un suscriptor que no lee")
	}
}

// Publicar sobre un bus cerrado es un no-op seguro.
func TestBus_PublicarTrasCierre(t *testing.T) {
	bus := session.NewBus()
	ch, _ := bus.Subscribe()
	bus.Close()

	bus.Publish(auth.Event{Kind: auth.EventSignedIn})

	_, ok := <-ch
	assert.False(t, ok)
}
