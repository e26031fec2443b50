// Package migration bootstraps and upgrades the MySQL schema.  Every step
// is idempotent: tables are created with IF NOT EXISTS, seed rows with
// INSERT IGNORE, and columns/indexes only after introspecting the live
// schema.  There is no version ledger; "already applied" is always decided
// by looking at the database itself, so any step is safe to re-run.
package migration

// createTableStatements holds the base DDL in dependency order.  Foreign
// keys require the referenced table to exist first.
var createTableStatements = []struct {
	name string
	ddl  string
}{
	{"roles", `
		CREATE TABLE IF NOT EXISTS roles (
			id INT AUTO_INCREMENT PRIMARY KEY,
			nombre VARCHAR(50) NOT NULL UNIQUE,
			descripcion TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`},
	{"empresa", `
		CREATE TABLE IF NOT EXISTS empresa (
			empresa_id INT AUTO_INCREMENT PRIMARY KEY,
			nombre VARCHAR(150) NOT NULL,
			nit VARCHAR(30) NOT NULL UNIQUE,
			direccion VARCHAR(200),
			telefono VARCHAR(30),
			email VARCHAR(150),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`},
	{"usuarios", `
		CREATE TABLE IF NOT EXISTS usuarios (
			id INT AUTO_INCREMENT PRIMARY KEY,
			empresa_id INT NULL,
			nombre VARCHAR(150) NOT NULL,
			identificacion VARCHAR(30),
			telefono VARCHAR(30),
			email VARCHAR(150) NOT NULL UNIQUE,
			password VARCHAR(100) NOT NULL,
			rol_id INT,
			estado VARCHAR(20) DEFAULT 'activo',
			ultimo_acceso DATETIME NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (empresa_id) REFERENCES empresa(empresa_id),
			FOREIGN KEY (rol_id) REFERENCES roles(id)
		)`},
	{"vehiculos", `
		CREATE TABLE IF NOT EXISTS vehiculos (
			id INT AUTO_INCREMENT PRIMARY KEY,
			usuario_id INT NOT NULL,
			empresa_id INT NULL,
			placa VARCHAR(10) NOT NULL,
			marca VARCHAR(50),
			modelo VARCHAR(50),
			anio INT NULL,
			tipo_vehiculo ENUM('carro','moto') NOT NULL,
			activo TINYINT(1) DEFAULT 1,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (usuario_id) REFERENCES usuarios(id),
			FOREIGN KEY (empresa_id) REFERENCES empresa(empresa_id)
		)`},
	{"inspecciones_preoperacionales", `
		CREATE TABLE IF NOT EXISTS inspecciones_preoperacionales (
			id INT PRIMARY KEY AUTO_INCREMENT,
			vehiculo_id INT NOT NULL,
			conductor_id INT NOT NULL,
			fecha_inspeccion DATETIME NOT NULL,
			kilometraje INT,
			tipo_vehiculo ENUM('carro','moto') NOT NULL,
			resultados JSON NOT NULL,
			firma_base64 LONGTEXT,
			pdf_base64 LONGTEXT,
			observaciones TEXT,
			estado ENUM('pendiente','aprobada','rechazada') DEFAULT 'pendiente',
			comentario_admin TEXT,
			admin_id INT NULL,
			fecha_revision DATETIME NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			FOREIGN KEY (vehiculo_id) REFERENCES vehiculos(id),
			FOREIGN KEY (conductor_id) REFERENCES usuarios(id)
		)`},
	{"sesiones", `
		CREATE TABLE IF NOT EXISTS sesiones (
			id INT AUTO_INCREMENT PRIMARY KEY,
			usuario_id INT NOT NULL,
			token TEXT NOT NULL,
			ip_address VARCHAR(45),
			user_agent VARCHAR(255),
			expires_at DATETIME NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (usuario_id) REFERENCES usuarios(id)
		)`},
	{"permisos", `
		CREATE TABLE IF NOT EXISTS permisos (
			id INT AUTO_INCREMENT PRIMARY KEY,
			codigo VARCHAR(50) NOT NULL UNIQUE,
			descripcion TEXT
		)`},
	{"rol_permisos", `
		CREATE TABLE IF NOT EXISTS rol_permisos (
			rol_id INT NOT NULL,
			permiso_id INT NOT NULL,
			PRIMARY KEY (rol_id, permiso_id),
			FOREIGN KEY (rol_id) REFERENCES roles(id),
			FOREIGN KEY (permiso_id) REFERENCES permisos(id)
		)`},
}

// seedStatements insert static reference data.  INSERT IGNORE keeps them
// idempotent against the UNIQUE keys above.
var seedStatements = []string{
	`INSERT IGNORE INTO roles (id, nombre, descripcion) VALUES
		(1, 'superadmin', 'Administrador global del sistema'),
		(2, 'admin_empresa', 'Administrador de empresa'),
		(3, 'conductor', 'Conductor de vehículo')`,
	`INSERT IGNORE INTO permisos (codigo, descripcion) VALUES
		('inspecciones.revisar', 'Aprobar o rechazar inspecciones'),
		('inspecciones.crear', 'Registrar inspecciones preoperacionales'),
		('conductores.ver', 'Consultar conductores y alertas')`,
	`INSERT IGNORE INTO rol_permisos (rol_id, permiso_id)
		SELECT r.id, p.id FROM roles r JOIN permisos p
		WHERE (r.nombre = 'admin_empresa' AND p.codigo IN ('inspecciones.revisar','conductores.ver'))
		   OR (r.nombre = 'conductor' AND p.codigo = 'inspecciones.crear')
		   OR (r.nombre = 'superadmin')`,
}

// columnSpec describes one ALTER TABLE ... ADD COLUMN step.
type columnSpec struct {
	name string // column name, checked against DESCRIBE output
	ddl  string // the ADD COLUMN clause
}

// usuarioPESVColumns are the driver-compliance fields added to an existing
// usuarios table.  Order matters: each AFTER clause references the previous
// column.
var usuarioPESVColumns = []columnSpec{
	{"numero_licencia", "ADD COLUMN `numero_licencia` varchar(20) DEFAULT NULL AFTER `rol_id`"},
	{"categoria_licencia", "ADD COLUMN `categoria_licencia` varchar(10) DEFAULT NULL AFTER `numero_licencia`"},
	{"fecha_vencimiento_licencia", "ADD COLUMN `fecha_vencimiento_licencia` date DEFAULT NULL AFTER `categoria_licencia`"},
	{"fecha_ingreso_empresa", "ADD COLUMN `fecha_ingreso_empresa` date DEFAULT NULL AFTER `fecha_vencimiento_licencia`"},
	{"estado_capacitacion_pesv", "ADD COLUMN `estado_capacitacion_pesv` enum('pendiente','en_proceso','completada','vencida') DEFAULT 'pendiente' AFTER `fecha_ingreso_empresa`"},
	{"fecha_ultima_capacitacion", "ADD COLUMN `fecha_ultima_capacitacion` date DEFAULT NULL AFTER `estado_capacitacion_pesv`"},
	{"fecha_proxima_capacitacion", "ADD COLUMN `fecha_proxima_capacitacion` date DEFAULT NULL AFTER `fecha_ultima_capacitacion`"},
}

// vehiculoPESVColumns track maintenance and document expiry on the fleet.
var vehiculoPESVColumns = []columnSpec{
	{"kilometraje_actual", "ADD COLUMN `kilometraje_actual` int DEFAULT NULL AFTER `activo`"},
	{"fecha_vencimiento_tecnomecanica", "ADD COLUMN `fecha_vencimiento_tecnomecanica` date DEFAULT NULL AFTER `kilometraje_actual`"},
	{"estado_tecnomecanica", "ADD COLUMN `estado_tecnomecanica` enum('vigente','por_vencer','vencida') DEFAULT NULL AFTER `fecha_vencimiento_tecnomecanica`"},
	{"fecha_vencimiento_soat", "ADD COLUMN `fecha_vencimiento_soat` date DEFAULT NULL AFTER `estado_tecnomecanica`"},
	{"estado_soat", "ADD COLUMN `estado_soat` enum('vigente','por_vencer','vencido') DEFAULT NULL AFTER `fecha_vencimiento_soat`"},
	{"fecha_vencimiento_seguro", "ADD COLUMN `fecha_vencimiento_seguro` date DEFAULT NULL AFTER `estado_soat`"},
	{"estado_seguro", "ADD COLUMN `estado_seguro` enum('vigente','por_vencer','vencido') DEFAULT NULL AFTER `fecha_vencimiento_seguro`"},
}

// indexSpec describes one ALTER TABLE ... ADD KEY step, checked against
// INFORMATION_SCHEMA.STATISTICS before applying.
type indexSpec struct {
	table string
	name  string
	ddl   string
}

var indexSpecs = []indexSpec{
	{"usuarios", "numero_licencia", "ALTER TABLE usuarios ADD UNIQUE KEY `numero_licencia` (`numero_licencia`)"},
	{"usuarios", "idx_rol_id", "ALTER TABLE usuarios ADD KEY `idx_rol_id` (`rol_id`)"},
	{"usuarios", "idx_estado_capacitacion", "ALTER TABLE usuarios ADD KEY `idx_estado_capacitacion` (`estado_capacitacion_pesv`)"},
	{"usuarios", "idx_fecha_vencimiento_licencia", "ALTER TABLE usuarios ADD KEY `idx_fecha_vencimiento_licencia` (`fecha_vencimiento_licencia`)"},
	{"vehiculos", "idx_placa", "ALTER TABLE vehiculos ADD KEY `idx_placa` (`placa`)"},
	{"inspecciones_preoperacionales", "idx_estado", "ALTER TABLE inspecciones_preoperacionales ADD KEY `idx_estado` (`estado`)"},
	{"inspecciones_preoperacionales", "idx_fecha_inspeccion", "ALTER TABLE inspecciones_preoperacionales ADD KEY `idx_fecha_inspeccion` (`fecha_inspeccion`)"},
}
