// Package mem implements the flash address cursor shared by the
// wire-protocol SET_ADDRESS/READ/WRITE commands and the host-facing
// typed accessors: a single pointer plus a fixed offset, advanced by
// one [codec] call at a time.
//
// The cursor never validates the range of an address against the
// size of the backing flash; that is the [codec.FlashReader] and
// [codec.FlashWriter] implementation's responsibility, same as the
// source this protocol was distilled from leaves range checking to
// the platform's flash_get/flash_put.
package mem
