// Package wiring registers every Graft node the application needs by
// blank-importing each adapter and engine package for its init()
// side effect.
package wiring

import (
	_ "github.com/RPDevJesco/EventChains-BuildSystem/internal/adapters/cache"               //nolint:depguard // registration-only import
	_ "github.com/RPDevJesco/EventChains-BuildSystem/internal/adapters/compiler"             //nolint:depguard // registration-only import
	_ "github.com/RPDevJesco/EventChains-BuildSystem/internal/adapters/config"               //nolint:depguard // registration-only import
	_ "github.com/RPDevJesco/EventChains-BuildSystem/internal/adapters/fs"                   //nolint:depguard // registration-only import
	_ "github.com/RPDevJesco/EventChains-BuildSystem/internal/adapters/logger"               //nolint:depguard // registration-only import
	_ "github.com/RPDevJesco/EventChains-BuildSystem/internal/adapters/telemetry/progrock"   //nolint:depguard // registration-only import
	_ "github.com/RPDevJesco/EventChains-BuildSystem/internal/app"                           //nolint:depguard // registration-only import
	_ "github.com/RPDevJesco/EventChains-BuildSystem/internal/engine/orchestrator"           //nolint:depguard // registration-only import
)
