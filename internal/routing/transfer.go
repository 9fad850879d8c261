package routing

import (
	log "github.com/sirupsen/logrus"

	"github.com/dronet-sim/dronet/internal/entities"
)

// Relay hands every packet src holds over to dst in one transmission. dst
// drops packets about events it already buffers; src removes everything it
// sent regardless, since duplicates mean someone else is carrying the event
// already. Returns the acknowledgements dst produced for the packets it
// kept.
func Relay(ctx *entities.Context, src, dst *entities.Drone, step int) []*entities.AckPacket {
	packets := append([]*entities.DataPacket(nil), src.AllPackets()...)
	if len(packets) == 0 {
		return nil
	}

	src.ConsumeEnergy(entities.ActionTransmission)
	for _, pck := range packets {
		pck.IncreaseTransmissionAttempt()
	}

	accepted := dst.AcceptPackets(packets)
	acks := make([]*entities.AckPacket, 0, len(accepted))
	for _, pck := range accepted {
		pck.AddHop(dst)
		acks = append(acks, entities.NewAckPacket(ctx, dst, src, &pck.Packet, step))
	}

	src.RemovePackets(packets)

	log.WithFields(log.Fields{
		"src":      src.ID,
		"dst":      dst.ID,
		"sent":     len(packets),
		"accepted": len(accepted),
	}).Debug("relayed packets")

	return acks
}
