package sortedvec

import "fmt"

// DefaultRowCapacity is the initial row capacity of a freshly created
// partition.
const DefaultRowCapacity = 4

// Config configures a two-level container.
type Config struct {
	// PartitionCapacity is the initial capacity for partitions.
	PartitionCapacity int
	// RowCapacity is the initial row capacity of every new partition.
	// 0 selects DefaultRowCapacity.
	RowCapacity int
}

func (cfg Config) normalized() Config {
	if cfg.RowCapacity == 0 {
		cfg.RowCapacity = DefaultRowCapacity
	}
	return cfg
}

func (cfg Config) validate() error {
	if cfg.PartitionCapacity < 0 {
		return fmt.Errorf("%w: negative partition capacity %d", ErrInvalidConfig, cfg.PartitionCapacity)
	}
	if cfg.RowCapacity < 0 {
		return fmt.Errorf("%w: negative row capacity %d", ErrInvalidConfig, cfg.RowCapacity)
	}
	return nil
}
